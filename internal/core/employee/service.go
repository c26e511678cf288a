package employee

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

const (
	maxEmployeeIDLength = 50
	maxFullNameLength   = 100
	maxDepartmentLength = 100
)

// Service は従業員レジストリのユースケースをまとめます。
type Service struct {
	repo       Repository
	attendance AttendanceRemover
	clock      Clock
	tx         TransactionManager
}

// UseCase は従業員レジストリの公開インターフェースです。
type UseCase interface {
	RegisterEmployee(ctx context.Context, in RegisterEmployeeInput) (*Employee, error)
	GetEmployee(ctx context.Context, in GetEmployeeInput) (*Employee, error)
	ListEmployees(ctx context.Context) ([]*Employee, error)
	DeleteEmployee(ctx context.Context, in DeleteEmployeeInput) (*DeleteEmployeeResult, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, attendance AttendanceRemover, clock Clock, tx TransactionManager) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, attendance: attendance, clock: clock, tx: tx}
}

// RegisterEmployeeInput は従業員登録時の入力です。
type RegisterEmployeeInput struct {
	EmployeeID string
	FullName   string
	Email      string
	Department string
}

// GetEmployeeInput は従業員取得時の入力です。
type GetEmployeeInput struct {
	EmployeeID string
}

// DeleteEmployeeInput は従業員削除時の入力です。
type DeleteEmployeeInput struct {
	EmployeeID string
}

// DeleteEmployeeResult はカスケード削除の結果を表します。
type DeleteEmployeeResult struct {
	EmployeeID        string
	DeletedEmployees  int64
	DeletedAttendance int64
}

// RegisterEmployee は新しい従業員を登録します。EmployeeID と Email の一意性は
// 大文字小文字を区別せずに判定します。ストア側の一意インデックスが最終的な
// 防衛線であり、ここでの存在チェックは競合時により分かりやすいエラーを返す
// ための先行確認です。
func (s *Service) RegisterEmployee(ctx context.Context, in RegisterEmployeeInput) (*Employee, error) {
	employeeID, err := normalizeEmployeeID(in.EmployeeID)
	if err != nil {
		return nil, err
	}

	fullName, err := normalizeRequiredField(in.FullName, maxFullNameLength, ErrInvalidFullName)
	if err != nil {
		return nil, err
	}

	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}

	department, err := normalizeRequiredField(in.Department, maxDepartmentLength, ErrInvalidDepartment)
	if err != nil {
		return nil, err
	}

	if allFieldsEqualFold(employeeID, fullName, email, department) {
		return nil, ErrSuspiciousInput
	}

	var created *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if err := s.ensureEmployeeIDNotExists(txCtx, employeeID); err != nil {
			return err
		}
		if err := s.ensureEmailNotExists(txCtx, email); err != nil {
			return err
		}

		emp := &Employee{
			EmployeeID: employeeID,
			FullName:   fullName,
			Email:      email,
			Department: department,
			CreatedAt:  s.clock.Now(),
		}

		result, err := s.repo.Create(txCtx, emp)
		if err != nil {
			return err
		}

		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// GetEmployee は従業員を取得します。
func (s *Service) GetEmployee(ctx context.Context, in GetEmployeeInput) (*Employee, error) {
	employeeID, err := normalizeEmployeeID(in.EmployeeID)
	if err != nil {
		return nil, err
	}

	var result *Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByEmployeeID(txCtx, employeeID)
		if err != nil {
			return err
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// ListEmployees は従業員の一覧を取得します。
func (s *Service) ListEmployees(ctx context.Context) ([]*Employee, error) {
	var employees []*Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.List(txCtx)
		if err != nil {
			return err
		}
		employees = result
		return nil
	}); err != nil {
		return nil, err
	}

	return employees, nil
}

// DeleteEmployee は従業員を削除します。正規の EmployeeID に一致する勤怠レコードを
// 先に削除してから従業員本体を削除します。両ステップは同一トランザクション内で
// 実行されるため、途中で失敗した場合はどちらも残ります。
func (s *Service) DeleteEmployee(ctx context.Context, in DeleteEmployeeInput) (*DeleteEmployeeResult, error) {
	employeeID, err := normalizeEmployeeID(in.EmployeeID)
	if err != nil {
		return nil, err
	}

	var result *DeleteEmployeeResult
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByEmployeeID(txCtx, employeeID)
		if err != nil {
			return err
		}

		removed, err := s.attendance.DeleteByEmployeeID(txCtx, found.EmployeeID)
		if err != nil {
			return err
		}

		if err := s.repo.Delete(txCtx, found.EmployeeID); err != nil {
			if errors.Is(err, ErrEmployeeNotFound) {
				return ErrCascadeIncomplete
			}
			return err
		}

		result = &DeleteEmployeeResult{
			EmployeeID:        found.EmployeeID,
			DeletedEmployees:  1,
			DeletedAttendance: removed,
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *Service) ensureEmployeeIDNotExists(ctx context.Context, employeeID string) error {
	emp, err := s.repo.FindByEmployeeID(ctx, employeeID)
	if err != nil && !errors.Is(err, ErrEmployeeNotFound) {
		return err
	}
	if emp != nil {
		return ErrEmployeeIDAlreadyExists
	}
	return nil
}

func (s *Service) ensureEmailNotExists(ctx context.Context, email string) error {
	emp, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrEmployeeNotFound) {
		return err
	}
	if emp != nil {
		return ErrEmailAlreadyExists
	}
	return nil
}

func normalizeEmployeeID(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || utf8.RuneCountInString(trimmed) > maxEmployeeIDLength {
		return "", ErrInvalidEmployeeID
	}
	return trimmed, nil
}

func normalizeRequiredField(raw string, maxLength int, invalid error) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || utf8.RuneCountInString(trimmed) > maxLength {
		return "", invalid
	}
	return trimmed, nil
}

func normalizeEmail(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return "", ErrInvalidEmail
	}
	return trimmed, nil
}

// allFieldsEqualFold は全フィールドが大文字小文字を無視して同一値かを判定します。
// テストデータの紛れ込みを弾くためのガードです。
func allFieldsEqualFold(employeeID, fullName, email, department string) bool {
	return strings.EqualFold(employeeID, fullName) &&
		strings.EqualFold(employeeID, email) &&
		strings.EqualFold(employeeID, department)
}
