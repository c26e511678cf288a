package employee

import "time"

// Employee は従業員レコードを表します。EmployeeID は登録時の表記を正とし、
// 勤怠側からの参照もこの値で行われます。
type Employee struct {
	ID         string
	EmployeeID string
	FullName   string
	Email      string
	Department string
	CreatedAt  time.Time
}
