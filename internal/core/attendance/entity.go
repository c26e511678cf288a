package attendance

import "time"

// Status は勤怠区分を表します。
type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

// Record は従業員 1 人・1 日分の勤怠レコードです。EmployeeID には従業員レジストリに
// 保存されている正規の表記を保持します。Date は UTC の 0 時に正規化されます。
type Record struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Status     Status
	CreatedAt  time.Time
}
