package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/codex-rest-clean-arch/internal/core/attendance"
)

// AttendanceHandler は勤怠台帳の REST 実装です。
type AttendanceHandler struct {
	svc attendance.UseCase
}

// NewAttendanceHandler は AttendanceHandler を生成します。
func NewAttendanceHandler(svc attendance.UseCase) *AttendanceHandler {
	return &AttendanceHandler{svc: svc}
}

type markAttendanceRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}

type attendanceResponse struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Date       string    `json:"date"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func toAttendanceResponse(record *attendance.Record) attendanceResponse {
	return attendanceResponse{
		ID:         record.ID,
		EmployeeID: record.EmployeeID,
		Date:       record.Date.Format("2006-01-02"),
		Status:     string(record.Status),
		CreatedAt:  record.CreatedAt,
	}
}

func toAttendanceResponses(records []*attendance.Record) []attendanceResponse {
	responses := make([]attendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toAttendanceResponse(record))
	}
	return responses
}

// Mark は勤怠を 1 件登録します。
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req markAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.svc.MarkAttendance(c.Request.Context(), attendance.MarkAttendanceInput{
		EmployeeID: req.EmployeeID,
		Date:       req.Date,
		Status:     req.Status,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toAttendanceResponse(created))
}

// ListForEmployee は指定従業員の勤怠一覧を返します。
func (h *AttendanceHandler) ListForEmployee(c *gin.Context) {
	records, err := h.svc.ListForEmployee(c.Request.Context(), attendance.ListForEmployeeInput{
		EmployeeID: c.Param("employee_id"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAttendanceResponses(records))
}

// ListAll は全勤怠レコードの一覧を返します。
func (h *AttendanceHandler) ListAll(c *gin.Context) {
	records, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAttendanceResponses(records))
}
