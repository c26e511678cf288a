package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/codex-rest-clean-arch/internal/core/employee"
	pgxmock "github.com/pashagolub/pgxmock/v3"
)

type stubRow struct {
	scanFn func(dest ...interface{}) error
}

func (s stubRow) Scan(dest ...interface{}) error {
	return s.scanFn(dest...)
}

func TestScanEmployee_Success(t *testing.T) {
	t.Parallel()

	createdAt := time.Now().UTC()

	row := stubRow{scanFn: func(dest ...interface{}) error {
		if len(dest) != 6 {
			return errors.New("unexpected dest length")
		}
		*(dest[0].(*string)) = "2a1f8c3e-0000-0000-0000-000000000001"
		*(dest[1].(*string)) = "E001"
		*(dest[2].(*string)) = "Jane Doe"
		*(dest[3].(*string)) = "jane@example.com"
		*(dest[4].(*string)) = "Engineering"
		*(dest[5].(*time.Time)) = createdAt
		return nil
	}}

	emp, err := scanEmployee(row)
	if err != nil {
		t.Fatalf("scanEmployee returned error: %v", err)
	}

	if emp.EmployeeID != "E001" {
		t.Errorf("expected employee id E001, got %s", emp.EmployeeID)
	}
	if emp.Email != "jane@example.com" {
		t.Errorf("unexpected email: %s", emp.Email)
	}
	if !emp.CreatedAt.Equal(createdAt) {
		t.Errorf("unexpected created_at: %v", emp.CreatedAt)
	}
}

func TestScanEmployee_NoRows(t *testing.T) {
	t.Parallel()

	row := stubRow{scanFn: func(dest ...interface{}) error {
		return pgx.ErrNoRows
	}}

	_, err := scanEmployee(row)
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestTranslateEmployeePgError(t *testing.T) {
	t.Parallel()

	idErr := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: employeeIDUniqueIndex}
	if !errors.Is(translateEmployeePgError(idErr), employee.ErrEmployeeIDAlreadyExists) {
		t.Fatalf("expected employee id unique violation to map to ErrEmployeeIDAlreadyExists")
	}

	emailErr := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: emailUniqueIndex}
	if !errors.Is(translateEmployeePgError(emailErr), employee.ErrEmailAlreadyExists) {
		t.Fatalf("expected email unique violation to map to ErrEmailAlreadyExists")
	}

	if !errors.Is(translateEmployeePgError(pgx.ErrNoRows), employee.ErrEmployeeNotFound) {
		t.Fatalf("expected no rows to map to ErrEmployeeNotFound")
	}

	other := errors.New("other")
	if translateEmployeePgError(other) != other {
		t.Fatalf("unexpected translation for generic error")
	}
}

func TestEmployeeRepository_FindByEmployeeID_CaseInsensitiveQuery(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewEmployeeRepository(mock)

	query := regexp.QuoteMeta(`
        SELECT id, employee_id, full_name, email, department, created_at
          FROM employees
         WHERE lower(employee_id) = lower($1)
         LIMIT 1
    `)

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{"id", "employee_id", "full_name", "email", "department", "created_at"}).
		AddRow("emp-1", "E001", "Jane Doe", "jane@example.com", "Engineering", now)

	mock.ExpectQuery(query).WithArgs("e001").WillReturnRows(rows)

	found, err := repo.FindByEmployeeID(context.Background(), "e001")
	if err != nil {
		t.Fatalf("FindByEmployeeID returned error: %v", err)
	}

	if found.EmployeeID != "E001" {
		t.Fatalf("expected canonical employee id E001, got %s", found.EmployeeID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_Create_UniqueViolation(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewEmployeeRepository(mock)

	query := regexp.QuoteMeta(`
        INSERT INTO employees (id, employee_id, full_name, email, department, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, employee_id, full_name, email, department, created_at
    `)

	mock.ExpectQuery(query).
		WithArgs(pgxmock.AnyArg(), "E001", "Jane Doe", "jane@example.com", "Engineering", pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: employeeIDUniqueIndex})

	_, err = repo.Create(context.Background(), &employee.Employee{
		EmployeeID: "E001",
		FullName:   "Jane Doe",
		Email:      "jane@example.com",
		Department: "Engineering",
		CreatedAt:  time.Now().UTC(),
	})
	if !errors.Is(err, employee.ErrEmployeeIDAlreadyExists) {
		t.Fatalf("expected ErrEmployeeIDAlreadyExists, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_Delete_NotFound(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewEmployeeRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM employees WHERE employee_id = $1`)).
		WithArgs("E404").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	if err := repo.Delete(context.Background(), "E404"); !errors.Is(err, employee.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_List(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewEmployeeRepository(mock)

	query := regexp.QuoteMeta(`
        SELECT id, employee_id, full_name, email, department, created_at
          FROM employees
         ORDER BY created_at DESC, id DESC
    `)

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{"id", "employee_id", "full_name", "email", "department", "created_at"}).
		AddRow("emp-2", "E002", "John Roe", "john@example.com", "Sales", now).
		AddRow("emp-1", "E001", "Jane Doe", "jane@example.com", "Engineering", now.Add(-time.Hour))

	mock.ExpectQuery(query).WillReturnRows(rows)

	employees, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if len(employees) != 2 {
		t.Fatalf("expected 2 employees, got %d", len(employees))
	}
	if employees[0].EmployeeID != "E002" {
		t.Fatalf("unexpected first employee: %s", employees[0].EmployeeID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
