package attendance

import (
	"context"
	"errors"
	"strings"
	"time"
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
	dateLayout = "2006-01-02"

	// maxRecordAgeYears より前の日付は受け付けません。境界日ちょうども拒否です。
	maxRecordAgeYears = 5
)

// Service は勤怠台帳のユースケースをまとめます。
type Service struct {
	repo      Repository
	directory EmployeeDirectory
	clock     Clock
	tx        TransactionManager
}

// UseCase は勤怠台帳の公開インターフェースです。
type UseCase interface {
	MarkAttendance(ctx context.Context, in MarkAttendanceInput) (*Record, error)
	ListForEmployee(ctx context.Context, in ListForEmployeeInput) ([]*Record, error)
	ListAll(ctx context.Context) ([]*Record, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, directory EmployeeDirectory, clock Clock, tx TransactionManager) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, directory: directory, clock: clock, tx: tx}
}

// MarkAttendanceInput は勤怠登録時の入力です。Date は YYYY-MM-DD 形式の文字列です。
type MarkAttendanceInput struct {
	EmployeeID string
	Date       string
	Status     string
}

// ListForEmployeeInput は従業員別一覧取得時の入力です。
type ListForEmployeeInput struct {
	EmployeeID string
}

// MarkAttendance は勤怠を 1 件登録します。検証は従業員 ID の有無 → 従業員の存在 →
// 日付の構文 → 未来日 → 5 年超過 → 区分 → 重複、の順で行い、最初に失敗した段階の
// エラーを返します。重複の最終防衛線はストアの一意インデックスです。
func (s *Service) MarkAttendance(ctx context.Context, in MarkAttendanceInput) (*Record, error) {
	employeeID, err := normalizeEmployeeID(in.EmployeeID)
	if err != nil {
		return nil, err
	}

	var created *Record
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		canonicalID, err := s.directory.CanonicalEmployeeID(txCtx, employeeID)
		if err != nil {
			return err
		}

		date, err := parseDate(in.Date)
		if err != nil {
			return err
		}

		today := truncateToDate(s.clock.Now())
		if date.After(today) {
			return ErrFutureDate
		}
		if !date.After(today.AddDate(-maxRecordAgeYears, 0, 0)) {
			return ErrDateTooOld
		}

		status, err := parseStatus(in.Status)
		if err != nil {
			return err
		}

		if err := s.ensureNotMarked(txCtx, canonicalID, date); err != nil {
			return err
		}

		record := &Record{
			EmployeeID: canonicalID,
			Date:       date,
			Status:     status,
			CreatedAt:  s.clock.Now(),
		}

		result, err := s.repo.Create(txCtx, record)
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

// ListForEmployee は指定従業員の勤怠を日付の降順で取得します。
func (s *Service) ListForEmployee(ctx context.Context, in ListForEmployeeInput) ([]*Record, error) {
	employeeID, err := normalizeEmployeeID(in.EmployeeID)
	if err != nil {
		return nil, err
	}

	var records []*Record
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		canonicalID, err := s.directory.CanonicalEmployeeID(txCtx, employeeID)
		if err != nil {
			return err
		}

		result, err := s.repo.ListByEmployeeID(txCtx, canonicalID)
		if err != nil {
			return err
		}
		records = result
		return nil
	}); err != nil {
		return nil, err
	}

	return records, nil
}

// ListAll は全従業員の勤怠を日付の降順で取得します。
func (s *Service) ListAll(ctx context.Context) ([]*Record, error) {
	var records []*Record
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.ListAll(txCtx)
		if err != nil {
			return err
		}
		records = result
		return nil
	}); err != nil {
		return nil, err
	}

	return records, nil
}

func (s *Service) ensureNotMarked(ctx context.Context, employeeID string, date time.Time) error {
	record, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, date)
	if err != nil && !errors.Is(err, ErrRecordNotFound) {
		return err
	}
	if record != nil {
		return ErrAlreadyMarked
	}
	return nil
}

func normalizeEmployeeID(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidEmployeeID
	}
	return trimmed, nil
}

// parseDate は YYYY-MM-DD のみを受け付けます。time.Parse は桁の欠けた表記も
// 通してしまうため、フォーマットし直して一致することを確認します。
func parseDate(raw string) (time.Time, error) {
	parsed, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil || parsed.Format(dateLayout) != raw {
		return time.Time{}, ErrMalformedDate
	}
	return parsed, nil
}

func parseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPresent, StatusAbsent:
		return Status(raw), nil
	default:
		return "", ErrInvalidStatus
	}
}

func truncateToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
