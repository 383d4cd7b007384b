package db

import (
	"strings"
	"testing"

	"github.com/taskdeck/taskdeck/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return db
}

func TestDSN(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		port     int
		database string
		want     string
	}{
		{
			name:     "default local",
			host:     "127.0.0.1",
			port:     3306,
			database: "taskdeck",
			want:     "root@tcp(127.0.0.1:3306)/taskdeck?parseTime=true",
		},
		{
			name:     "custom host and port",
			host:     "10.0.0.5",
			port:     3307,
			database: "taskdeck_staging",
			want:     "root@tcp(10.0.0.5:3307)/taskdeck_staging?parseTime=true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DSN(tt.host, tt.port, tt.database)
			if got != tt.want {
				t.Errorf("DSN() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDSN_ParseTimeFlag(t *testing.T) {
	dsn := DSN("localhost", 3306, "test")
	if !strings.Contains(dsn, "parseTime=true") {
		t.Errorf("DSN missing parseTime=true: %s", dsn)
	}
}

func TestConnect_Error(t *testing.T) {
	// Port 1 is unlikely to have a MySQL server; expect connection error.
	_, err := Connect("127.0.0.1", 1, "nonexistent")
	if err == nil {
		t.Fatal("expected error connecting to invalid port")
	}
	if !strings.Contains(err.Error(), "db: connect to") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "db: connect to")
	}
}

func TestConnectAdmin_Error(t *testing.T) {
	_, err := ConnectAdmin("127.0.0.1", 1)
	if err == nil {
		t.Fatal("expected error connecting to invalid port")
	}
	if !strings.Contains(err.Error(), "db: admin connect to") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "db: admin connect to")
	}
}

func TestAllModels_Count(t *testing.T) {
	if got := len(AllModels()); got != 6 {
		t.Errorf("AllModels() returned %d models, want 6", got)
	}
}

func TestAutoMigrate_CreatesTables(t *testing.T) {
	db := openTestDB(t)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	for _, table := range []string{"users", "groups", "group_members", "tasks", "comments", "history_entries"} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("table %q not created", table)
		}
	}
}

func TestAutoMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate (1st): %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate (2nd): %v", err)
	}
}

func TestSeedDemoData(t *testing.T) {
	db := openTestDB(t)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	if err := SeedDemoData(db); err != nil {
		t.Fatalf("SeedDemoData: %v", err)
	}

	var userCount, groupCount, memberCount int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.Group{}).Count(&groupCount)
	db.Model(&models.GroupMember{}).Count(&memberCount)

	if userCount != 4 {
		t.Errorf("user count = %d, want 4", userCount)
	}
	if groupCount != 2 {
		t.Errorf("group count = %d, want 2", groupCount)
	}
	if memberCount != 3 {
		t.Errorf("membership count = %d, want 3", memberCount)
	}

	var admin models.User
	if err := db.Where("email = ?", "admin@company.com").First(&admin).Error; err != nil {
		t.Fatalf("query seeded admin: %v", err)
	}
	if admin.Role != models.RoleAdmin {
		t.Errorf("admin role = %q, want %q", admin.Role, models.RoleAdmin)
	}
}

func TestSeedDemoData_Idempotent(t *testing.T) {
	db := openTestDB(t)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	if err := SeedDemoData(db); err != nil {
		t.Fatalf("SeedDemoData (1st): %v", err)
	}
	if err := SeedDemoData(db); err != nil {
		t.Fatalf("SeedDemoData (2nd): %v", err)
	}

	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	if userCount != 4 {
		t.Errorf("user count = %d after double seed, want 4", userCount)
	}
}

func TestIsDuplicateEntry(t *testing.T) {
	db := openTestDB(t)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	u1 := models.User{Name: "A", Email: "dup@example.com", Role: models.RoleUser}
	if err := db.Create(&u1).Error; err != nil {
		t.Fatalf("create first user: %v", err)
	}
	u2 := models.User{Name: "B", Email: "dup@example.com", Role: models.RoleUser}
	err := db.Create(&u2).Error
	if err == nil {
		t.Fatal("expected unique violation on duplicate email")
	}
	if !IsDuplicateEntry(err) {
		t.Errorf("IsDuplicateEntry(%v) = false, want true", err)
	}
}

func TestIsDuplicateEntry_MembershipPair(t *testing.T) {
	db := openTestDB(t)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	if err := SeedDemoData(db); err != nil {
		t.Fatalf("SeedDemoData: %v", err)
	}

	// (group 1, user 2) already exists in the seed set.
	dup := models.GroupMember{GroupID: 1, UserID: 2}
	err := db.Create(&dup).Error
	if err == nil {
		t.Fatal("expected unique violation on duplicate membership")
	}
	if !IsDuplicateEntry(err) {
		t.Errorf("IsDuplicateEntry(%v) = false, want true", err)
	}
}

func TestIsDuplicateEntry_NonDuplicate(t *testing.T) {
	if IsDuplicateEntry(nil) {
		t.Error("IsDuplicateEntry(nil) = true, want false")
	}
	if IsDuplicateEntry(gorm.ErrRecordNotFound) {
		t.Error("IsDuplicateEntry(ErrRecordNotFound) = true, want false")
	}
}
