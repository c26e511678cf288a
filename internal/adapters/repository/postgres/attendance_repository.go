package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/codex-rest-clean-arch/internal/core/attendance"
	pgdb "github.com/ogurasousui/codex-rest-clean-arch/internal/platform/db/postgres"
)

// AttendanceRepository は PostgreSQL を利用した勤怠レコード永続化の実装です。
// attendance.EmployeeDirectory も実装しており、従業員レジストリのコードには
// 依存せず employees テーブルの保存済みデータだけを参照します。
type AttendanceRepository struct {
	pool pgdb.Queryer
}

// NewAttendanceRepository は AttendanceRepository を生成します。
func NewAttendanceRepository(pool pgdb.Queryer) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// Create は勤怠レコードを 1 件登録します。(employee_id, attended_on) の
// 一意インデックスが同日重複の最終防衛線です。
func (r *AttendanceRepository) Create(ctx context.Context, record *attendance.Record) (*attendance.Record, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO attendance_records (id, employee_id, attended_on, status, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, employee_id, attended_on, status, created_at
    `,
		uuid.NewString(),
		record.EmployeeID,
		record.Date,
		string(record.Status),
		record.CreatedAt,
	)

	created, err := scanAttendanceRecord(row)
	if err != nil {
		return nil, translateAttendancePgError(err)
	}
	return created, nil
}

// FindByEmployeeAndDate は正規の EmployeeID と日付で勤怠レコードを検索します。
func (r *AttendanceRepository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, employee_id, attended_on, status, created_at
          FROM attendance_records
         WHERE employee_id = $1 AND attended_on = $2
         LIMIT 1
    `, employeeID, date)

	found, err := scanAttendanceRecord(row)
	if err != nil {
		return nil, translateAttendancePgError(err)
	}
	return found, nil
}

// ListByEmployeeID は指定従業員の勤怠を日付の降順で取得します。
func (r *AttendanceRepository) ListByEmployeeID(ctx context.Context, employeeID string) ([]*attendance.Record, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT id, employee_id, attended_on, status, created_at
          FROM attendance_records
         WHERE employee_id = $1
         ORDER BY attended_on DESC, created_at DESC
    `, employeeID)
	if err != nil {
		return nil, translateAttendancePgError(err)
	}
	defer rows.Close()

	return collectAttendanceRecords(rows)
}

// ListAll は全勤怠レコードを日付の降順で取得します。
func (r *AttendanceRepository) ListAll(ctx context.Context) ([]*attendance.Record, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT id, employee_id, attended_on, status, created_at
          FROM attendance_records
         ORDER BY attended_on DESC, created_at DESC
    `)
	if err != nil {
		return nil, translateAttendancePgError(err)
	}
	defer rows.Close()

	return collectAttendanceRecords(rows)
}

// DeleteByEmployeeID は指定従業員の勤怠レコードを一括削除し、件数を返します。
// 従業員レジストリのカスケード削除から呼ばれます。
func (r *AttendanceRepository) DeleteByEmployeeID(ctx context.Context, employeeID string) (int64, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM attendance_records WHERE employee_id = $1`, employeeID)
	if err != nil {
		return 0, translateAttendancePgError(err)
	}
	return tag.RowsAffected(), nil
}

// CanonicalEmployeeID は employees テーブルを参照し、大文字小文字を区別せず
// 一致した従業員の正規 EmployeeID を返します。
func (r *AttendanceRepository) CanonicalEmployeeID(ctx context.Context, employeeID string) (string, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT employee_id
          FROM employees
         WHERE lower(employee_id) = lower($1)
         LIMIT 1
    `, employeeID)

	var canonicalID string
	if err := row.Scan(&canonicalID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", attendance.ErrEmployeeNotFound
		}
		return "", err
	}
	return canonicalID, nil
}

func collectAttendanceRecords(rows pgx.Rows) ([]*attendance.Record, error) {
	var records []*attendance.Record
	for rows.Next() {
		record, err := scanAttendanceRecord(rows)
		if err != nil {
			return nil, translateAttendancePgError(err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, translateAttendancePgError(err)
	}

	return records, nil
}

func scanAttendanceRecord(row pgx.Row) (*attendance.Record, error) {
	var (
		id         string
		employeeID string
		attendedOn time.Time
		status     string
		createdAt  time.Time
	)

	if err := row.Scan(&id, &employeeID, &attendedOn, &status, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, attendance.ErrRecordNotFound
		}
		return nil, err
	}

	attendedOn = attendedOn.UTC()
	return &attendance.Record{
		ID:         id,
		EmployeeID: employeeID,
		Date:       time.Date(attendedOn.Year(), attendedOn.Month(), attendedOn.Day(), 0, 0, 0, 0, time.UTC),
		Status:     attendance.Status(status),
		CreatedAt:  createdAt,
	}, nil
}

func translateAttendancePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return attendance.ErrRecordNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return attendance.ErrAlreadyMarked
		case checkViolationCode:
			return attendance.ErrInvalidStatus
		}
	}

	return err
}
