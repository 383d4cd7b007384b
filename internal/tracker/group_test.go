package tracker

import (
	"context"
	"strings"
	"testing"
)

func TestCreateGroup(t *testing.T) {
	svc, _, _ := newTestService(t)

	view, err := svc.CreateGroup(context.Background(), "Platform", "infra work", 1)
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	if view.Name != "Platform" {
		t.Errorf("name = %q", view.Name)
	}
	if view.OwnerID != 1 || view.OwnerName != "Alice Admin" {
		t.Errorf("owner = %d %q, want 1 Alice Admin", view.OwnerID, view.OwnerName)
	}
	if view.CreatedDate.IsZero() {
		t.Error("createdDate not set")
	}
}

func TestCreateGroup_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateGroup(ctx, "  ", "", 1); !IsValidation(err) {
		t.Errorf("empty name: error = %v, want ValidationError", err)
	}
	if _, err := svc.CreateGroup(ctx, strings.Repeat("g", 101), "", 1); !IsValidation(err) {
		t.Errorf("overlong name: error = %v, want ValidationError", err)
	}
	if _, err := svc.CreateGroup(ctx, "ok", "", 99); !IsNotFound(err) {
		t.Errorf("unknown owner: error = %v, want NotFoundError", err)
	}
}

func TestListGroups(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateGroup(ctx, "Platform", "", 1); err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}

	views, err := svc.ListGroups(ctx)
	if err != nil {
		t.Fatalf("ListGroups: %v", err)
	}
	// One from the test seed plus one just created.
	if len(views) != 2 {
		t.Fatalf("groups = %d, want 2", len(views))
	}
	for _, v := range views {
		if v.OwnerName == "" {
			t.Errorf("group %q has empty ownerName", v.Name)
		}
	}
}

func TestAddMember_UniquePair(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.AddMember(ctx, 1, 2); err != nil {
		t.Fatalf("AddMember (1st): %v", err)
	}
	err := svc.AddMember(ctx, 1, 2)
	if !IsConflict(err) {
		t.Errorf("duplicate membership: error = %v, want conflict ValidationError", err)
	}
}

func TestAddMember_UnknownRefs(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.AddMember(ctx, 99, 1); !IsNotFound(err) {
		t.Errorf("unknown group: error = %v, want NotFoundError", err)
	}
	if err := svc.AddMember(ctx, 1, 99); !IsNotFound(err) {
		t.Errorf("unknown user: error = %v, want NotFoundError", err)
	}
}
