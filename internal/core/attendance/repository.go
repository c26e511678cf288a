package attendance

import (
	"context"
	"time"
)

// Repository は勤怠レコード永続化の抽象です。一覧系は日付の降順で返します。
type Repository interface {
	Create(ctx context.Context, record *Record) (*Record, error)
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Record, error)
	ListByEmployeeID(ctx context.Context, employeeID string) ([]*Record, error)
	ListAll(ctx context.Context) ([]*Record, error)
}

// EmployeeDirectory は従業員レジストリの保存済みデータへの参照です。渡された表記に
// 大文字小文字を区別せず一致する従業員の正規 EmployeeID を返し、存在しなければ
// ErrEmployeeNotFound を返します。レジストリのコードには依存しません。
type EmployeeDirectory interface {
	CanonicalEmployeeID(ctx context.Context, employeeID string) (string, error)
}
