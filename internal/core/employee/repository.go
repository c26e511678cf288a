package employee

import "context"

// Repository は従業員永続化の抽象です。FindByEmployeeID / FindByEmail は
// 大文字小文字を区別しない完全一致で検索します。
type Repository interface {
	Create(ctx context.Context, employee *Employee) (*Employee, error)
	Delete(ctx context.Context, employeeID string) error
	FindByEmployeeID(ctx context.Context, employeeID string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	List(ctx context.Context) ([]*Employee, error)
}

// AttendanceRemover は従業員削除のカスケードで勤怠レコードを一括削除する抽象です。
// 正規化済みの EmployeeID を受け取り、削除した件数を返します。
type AttendanceRemover interface {
	DeleteByEmployeeID(ctx context.Context, employeeID string) (int64, error)
}
