package notify

import (
	"context"
	"fmt"
	"strings"
	"testing"

	slackapi "github.com/slack-go/slack"
)

// mockSlackClient records PostMessage calls.
type mockSlackClient struct {
	calls    []string // channel IDs
	postErr  error
	lastOpts int
}

func (m *mockSlackClient) PostMessage(channelID string, options ...slackapi.MsgOption) (string, string, error) {
	m.calls = append(m.calls, channelID)
	m.lastOpts = len(options)
	if m.postErr != nil {
		return "", "", m.postErr
	}
	return channelID, "123.456", nil
}

func TestNewSlack_RequiresToken(t *testing.T) {
	_, err := NewSlack(SlackOpts{ChannelID: "C123"})
	if err == nil {
		t.Fatal("expected error for missing bot token")
	}
	if !strings.Contains(err.Error(), "bot token is required") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "bot token is required")
	}
}

func TestNewSlack_RequiresChannel(t *testing.T) {
	_, err := NewSlack(SlackOpts{Client: &mockSlackClient{}})
	if err == nil {
		t.Fatal("expected error for missing channel")
	}
}

func TestSlackNotify(t *testing.T) {
	client := &mockSlackClient{}
	n, err := NewSlack(SlackOpts{Client: client, ChannelID: "C123"})
	if err != nil {
		t.Fatalf("NewSlack: %v", err)
	}

	ev := Event{Action: ActionStatus, TaskID: 7, TaskTitle: "Fix bug", Detail: "Open -> InProgress"}
	if err := n.Notify(context.Background(), ev); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if len(client.calls) != 1 {
		t.Fatalf("PostMessage called %d times, want 1", len(client.calls))
	}
	if client.calls[0] != "C123" {
		t.Errorf("posted to channel %q, want %q", client.calls[0], "C123")
	}
}

func TestSlackNotify_PostError(t *testing.T) {
	client := &mockSlackClient{postErr: fmt.Errorf("rate limited")}
	n, err := NewSlack(SlackOpts{Client: client, ChannelID: "C123"})
	if err != nil {
		t.Fatalf("NewSlack: %v", err)
	}

	err = n.Notify(context.Background(), Event{Action: ActionCreated, TaskID: 1, TaskTitle: "x"})
	if err == nil {
		t.Fatal("expected error from failing client")
	}
	if !strings.Contains(err.Error(), "notify: slack post") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "notify: slack post")
	}
}

func TestEventTitle(t *testing.T) {
	tests := []struct {
		action string
		want   string
	}{
		{ActionCreated, "Task #3 created: Fix bug"},
		{ActionStatus, "Task #3 status changed: Fix bug"},
		{ActionAssigned, "Task #3 reassigned: Fix bug"},
		{"other", "Task #3 updated: Fix bug"},
	}
	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			got := eventTitle(Event{Action: tt.action, TaskID: 3, TaskTitle: "Fix bug"})
			if got != tt.want {
				t.Errorf("eventTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSlackColor_KnownActions(t *testing.T) {
	for _, action := range []string{ActionCreated, ActionStatus, ActionAssigned} {
		if slackColor(action) == "" {
			t.Errorf("slackColor(%q) is empty", action)
		}
	}
	if slackColor("bogus") != "" {
		t.Error("slackColor for unknown action should be empty")
	}
}

func TestNop(t *testing.T) {
	if err := (Nop{}).Notify(context.Background(), Event{}); err != nil {
		t.Errorf("Nop.Notify() = %v, want nil", err)
	}
}

type failingNotifier struct{ err error }

func (f failingNotifier) Notify(context.Context, Event) error { return f.err }

func TestMulti_FansOutToAll(t *testing.T) {
	a := &mockSlackClient{}
	b := &mockSlackClient{}
	na, _ := NewSlack(SlackOpts{ChannelID: "C1", Client: a})
	nb, _ := NewSlack(SlackOpts{ChannelID: "C2", Client: b})

	m := Multi{na, nb}
	ev := Event{Action: ActionCreated, TaskID: 7, TaskTitle: "Fix bug"}
	if err := m.Notify(context.Background(), ev); err != nil {
		t.Fatalf("Notify() = %v", err)
	}
	if len(a.calls) != 1 || len(b.calls) != 1 {
		t.Errorf("calls = %d/%d, want 1/1", len(a.calls), len(b.calls))
	}
}

func TestMulti_ContinuesPastFailure(t *testing.T) {
	client := &mockSlackClient{}
	ok, _ := NewSlack(SlackOpts{ChannelID: "C1", Client: client})
	bad := failingNotifier{err: fmt.Errorf("send failed")}

	m := Multi{bad, ok}
	err := m.Notify(context.Background(), Event{Action: ActionStatus, TaskID: 1})
	if err == nil {
		t.Fatal("expected first error to propagate")
	}
	if len(client.calls) != 1 {
		t.Errorf("later notifier calls = %d, want 1", len(client.calls))
	}
}
