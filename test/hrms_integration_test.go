//go:build integration

package integration

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	repo "github.com/ogurasousui/codex-rest-clean-arch/internal/adapters/repository/postgres"
	"github.com/ogurasousui/codex-rest-clean-arch/internal/core/attendance"
	"github.com/ogurasousui/codex-rest-clean-arch/internal/core/employee"
	"github.com/ogurasousui/codex-rest-clean-arch/internal/platform/config"
	pg "github.com/ogurasousui/codex-rest-clean-arch/internal/platform/db/postgres"
)

const migrationsDir = "assets/migrations"

func TestEmployeeAttendanceIntegration(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(configPathFromEnv())
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if err := resetMigrations(cfg.Database.DSN(), migrationsDir); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	ctx := context.Background()
	pool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	t.Cleanup(func() { pool.Close() })

	txManager := pg.NewTransactionManager(pool)
	employeeRepo := repo.NewEmployeeRepository(pool)
	attendanceRepo := repo.NewAttendanceRepository(pool)

	clock := stubClock{now: time.Now().UTC()}
	employeeSvc := employee.NewService(employeeRepo, attendanceRepo, clock, txManager)
	attendanceSvc := attendance.NewService(attendanceRepo, attendanceRepo, clock, txManager)

	created, err := employeeSvc.RegisterEmployee(ctx, employee.RegisterEmployeeInput{
		EmployeeID: "E100",
		FullName:   "統合 太郎",
		Email:      "e100@example.com",
		Department: "QA",
	})
	if err != nil {
		t.Fatalf("RegisterEmployee error: %v", err)
	}

	if _, err := employeeSvc.RegisterEmployee(ctx, employee.RegisterEmployeeInput{
		EmployeeID: "e100",
		FullName:   "別人",
		Email:      "other@example.com",
		Department: "QA",
	}); !errors.Is(err, employee.ErrEmployeeIDAlreadyExists) {
		t.Fatalf("expected ErrEmployeeIDAlreadyExists, got %v", err)
	}

	today := clock.now.Format("2006-01-02")
	yesterday := clock.now.AddDate(0, 0, -1).Format("2006-01-02")

	if _, err := attendanceSvc.MarkAttendance(ctx, attendance.MarkAttendanceInput{
		EmployeeID: "e100",
		Date:       today,
		Status:     "Present",
	}); err != nil {
		t.Fatalf("MarkAttendance error: %v", err)
	}

	if _, err := attendanceSvc.MarkAttendance(ctx, attendance.MarkAttendanceInput{
		EmployeeID: "E100",
		Date:       today,
		Status:     "Absent",
	}); !errors.Is(err, attendance.ErrAlreadyMarked) {
		t.Fatalf("expected ErrAlreadyMarked, got %v", err)
	}

	if _, err := attendanceSvc.MarkAttendance(ctx, attendance.MarkAttendanceInput{
		EmployeeID: "E100",
		Date:       yesterday,
		Status:     "Absent",
	}); err != nil {
		t.Fatalf("MarkAttendance (yesterday) error: %v", err)
	}

	records, err := attendanceSvc.ListForEmployee(ctx, attendance.ListForEmployeeInput{EmployeeID: "E100"})
	if err != nil {
		t.Fatalf("ListForEmployee error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 attendance records, got %d", len(records))
	}
	if !records[0].Date.After(records[1].Date) {
		t.Fatalf("records should be newest first: %v, %v", records[0].Date, records[1].Date)
	}

	result, err := employeeSvc.DeleteEmployee(ctx, employee.DeleteEmployeeInput{EmployeeID: "e100"})
	if err != nil {
		t.Fatalf("DeleteEmployee error: %v", err)
	}
	if result.DeletedAttendance != 2 {
		t.Fatalf("expected 2 deleted attendance records, got %d", result.DeletedAttendance)
	}

	if _, err := employeeSvc.GetEmployee(ctx, employee.GetEmployeeInput{EmployeeID: created.EmployeeID}); !errors.Is(err, employee.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}

	orphaned, err := attendanceRepo.ListByEmployeeID(ctx, "E100")
	if err != nil {
		t.Fatalf("ListByEmployeeID error: %v", err)
	}
	if len(orphaned) != 0 {
		t.Fatalf("expected no orphaned attendance records, got %d", len(orphaned))
	}
}

func resetMigrations(dsn, dir string) error {
	m, err := migrate.New("file://"+dir, dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func configPathFromEnv() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "assets/local.yaml"
}

type stubClock struct {
	now time.Time
}

func (s stubClock) Now() time.Time {
	return s.now
}
