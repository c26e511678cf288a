package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/codex-rest-clean-arch/internal/core/employee"
	pgdb "github.com/ogurasousui/codex-rest-clean-arch/internal/platform/db/postgres"
)

const (
	uniqueViolationCode = "23505"
	checkViolationCode  = "23514"

	employeeIDUniqueIndex = "employees_employee_id_lower_idx"
	emailUniqueIndex      = "employees_email_lower_idx"
)

// EmployeeRepository は PostgreSQL を利用した従業員永続化の実装です。
// 大文字小文字を区別しない一意性は lower() 式インデックスで担保されており、
// アプリケーション側の先行チェックをすり抜けた競合もここで弾かれます。
type EmployeeRepository struct {
	pool pgdb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// Create は従業員を新規登録します。レコード ID はここで採番します。
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO employees (id, employee_id, full_name, email, department, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, employee_id, full_name, email, department, created_at
    `,
		uuid.NewString(),
		e.EmployeeID,
		e.FullName,
		e.Email,
		e.Department,
		e.CreatedAt,
	)

	created, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return created, nil
}

// Delete は正規の EmployeeID に完全一致する従業員を削除します。
func (r *EmployeeRepository) Delete(ctx context.Context, employeeID string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM employees WHERE employee_id = $1`, employeeID)
	if err != nil {
		return translateEmployeePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// FindByEmployeeID は EmployeeID で従業員を取得します。照合は大文字小文字を
// 区別しない完全一致です。
func (r *EmployeeRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, employee_id, full_name, email, department, created_at
          FROM employees
         WHERE lower(employee_id) = lower($1)
         LIMIT 1
    `, employeeID)

	found, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return found, nil
}

// FindByEmail はメールアドレスで従業員を取得します。照合は大文字小文字を
// 区別しない完全一致です。
func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, employee_id, full_name, email, department, created_at
          FROM employees
         WHERE lower(email) = lower($1)
         LIMIT 1
    `, email)

	found, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return found, nil
}

// List は従業員の一覧を取得します。
func (r *EmployeeRepository) List(ctx context.Context) ([]*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT id, employee_id, full_name, email, department, created_at
          FROM employees
         ORDER BY created_at DESC, id DESC
    `)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	defer rows.Close()

	var employees []*employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, translateEmployeePgError(err)
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, translateEmployeePgError(err)
	}

	return employees, nil
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var (
		id         string
		employeeID string
		fullName   string
		email      string
		department string
		createdAt  time.Time
	)

	if err := row.Scan(&id, &employeeID, &fullName, &email, &department, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}

	return &employee.Employee{
		ID:         id,
		EmployeeID: employeeID,
		FullName:   fullName,
		Email:      email,
		Department: department,
		CreatedAt:  createdAt,
	}, nil
}

func translateEmployeePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		switch pgErr.ConstraintName {
		case employeeIDUniqueIndex:
			return employee.ErrEmployeeIDAlreadyExists
		case emailUniqueIndex:
			return employee.ErrEmailAlreadyExists
		default:
			return err
		}
	}

	return err
}
