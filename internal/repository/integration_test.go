//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/model"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=timeclock password=timeclock dbname=timeclock_test sslmode=disable TimeZone=UTC"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot connect to test database: %v\n", err)
		os.Exit(1)
	}

	if err := testDB.AutoMigrate(&model.Employee{}, &model.AttendanceLog{}, &model.ClockSetting{}); err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate failed: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func uniqueCategory() string {
	return fmt.Sprintf("T%d", time.Now().UnixNano()%1_000_000_000)
}

// ═══════════════════════════════════════════════════════════
// Logs
// ═══════════════════════════════════════════════════════════

func TestLogRepo_AppendListClear(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	cat := uniqueCategory()
	base := time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		log := &model.AttendanceLog{EmployeeID: "0042", Type: model.PunchIn, Category: cat, Timestamp: base.Add(time.Duration(i) * time.Minute)}
		commit, err := repo.Log.Append(ctx, log)
		if err != nil {
			t.Fatalf("Append failed: %v", err)
		}
		if err := commit.Wait(ctx); err != nil {
			t.Fatalf("gorm commit is resolved synchronously: %v", err)
		}
	}

	logs, err := repo.Log.ListByCategory(ctx, cat, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(logs) != 2 || !logs[0].Timestamp.Equal(base.Add(2*time.Minute)) {
		t.Errorf("expected newest two rows, got %+v", logs)
	}
	if logs[0].EmployeeID != "0042" {
		t.Error("leading zeros must survive the round trip")
	}

	n, err := repo.Log.ClearByCategory(ctx, cat)
	if err != nil || n != 3 {
		t.Fatalf("expected 3 cleared rows, got %d (%v)", n, err)
	}
}

// ═══════════════════════════════════════════════════════════
// Roster
// ═══════════════════════════════════════════════════════════

func TestEmployeeRepo_ReplaceAndUpsert(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	defer repo.Employee.Clear(ctx)

	err := repo.Employee.ReplaceAll(ctx, []model.Employee{
		{EmployeeNo: "00123", Name: "Jane Doe", JacketSize: "MEDIUM"},
		{EmployeeNo: "00123", Name: "Jane D."},
		{EmployeeNo: "9", Name: "Nine"},
	})
	if err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}

	e, err := repo.Employee.GetByEmployeeNo(ctx, "00123")
	if err != nil || e.Name != "Jane D." {
		t.Fatalf("expected last duplicate to win, got %+v (%v)", e, err)
	}

	if err := repo.Employee.Upsert(ctx, []model.Employee{{EmployeeNo: "9", Name: "Nine Updated", JacketSize: "XL"}}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	e, _ = repo.Employee.GetByEmployeeNo(ctx, "9")
	if e.Name != "Nine Updated" || e.JacketSize != "XL" {
		t.Errorf("upsert did not overwrite: %+v", e)
	}

	if _, err := repo.Employee.GetByEmployeeNo(ctx, "123"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("123 must not match 00123, got %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Setting
// ═══════════════════════════════════════════════════════════

func TestSettingRepo_SaveAndGet(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	if err := repo.Setting.Update(ctx, &model.ClockSetting{RequireName: false}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	s, err := repo.Setting.Get(ctx)
	if err != nil || s.RequireName {
		t.Fatalf("expected require_name=false, got %+v (%v)", s, err)
	}
}

func TestSettingRepo_UpdateKeepsCreatedAt(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	if err := repo.Setting.Update(ctx, &model.ClockSetting{RequireName: true}); err != nil {
		t.Fatalf("first Update failed: %v", err)
	}
	first, err := repo.Setting.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if first.CreatedAt.IsZero() {
		t.Fatal("created_at should be set on insert")
	}

	time.Sleep(10 * time.Millisecond)
	// a fresh struct carries a zero CreatedAt
	if err := repo.Setting.Update(ctx, &model.ClockSetting{RequireName: false}); err != nil {
		t.Fatalf("second Update failed: %v", err)
	}
	second, err := repo.Setting.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if second.RequireName {
		t.Error("require_name should be false after the second update")
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("created_at changed: %v -> %v", first.CreatedAt, second.CreatedAt)
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Errorf("updated_at should advance: %v -> %v", first.UpdatedAt, second.UpdatedAt)
	}
}

func TestLogRepo_ListWithoutCap(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	category := uniqueCategory()

	for i := 0; i < 3; i++ {
		if _, err := repo.Log.Append(ctx, &model.AttendanceLog{Category: category, EmployeeID: "1", Type: model.PunchIn}); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}
	logs, err := repo.Log.ListByCategory(ctx, category, 0)
	if err != nil || len(logs) != 3 {
		t.Fatalf("expected 3 logs without a cap, got %d (%v)", len(logs), err)
	}
}
