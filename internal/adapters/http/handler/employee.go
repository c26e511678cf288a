package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/codex-rest-clean-arch/internal/core/employee"
)

// EmployeeHandler は従業員レジストリの REST 実装です。
type EmployeeHandler struct {
	svc employee.UseCase
}

// NewEmployeeHandler は EmployeeHandler を生成します。
func NewEmployeeHandler(svc employee.UseCase) *EmployeeHandler {
	return &EmployeeHandler{svc: svc}
}

type registerEmployeeRequest struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

type employeeResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

func toEmployeeResponse(emp *employee.Employee) employeeResponse {
	return employeeResponse{
		ID:         emp.ID,
		EmployeeID: emp.EmployeeID,
		FullName:   emp.FullName,
		Email:      emp.Email,
		Department: emp.Department,
	}
}

// Register は従業員を登録します。
func (h *EmployeeHandler) Register(c *gin.Context) {
	var req registerEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.svc.RegisterEmployee(c.Request.Context(), employee.RegisterEmployeeInput{
		EmployeeID: req.EmployeeID,
		FullName:   req.FullName,
		Email:      req.Email,
		Department: req.Department,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toEmployeeResponse(created))
}

// List は従業員の一覧を返します。
func (h *EmployeeHandler) List(c *gin.Context) {
	employees, err := h.svc.ListEmployees(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	responses := make([]employeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, toEmployeeResponse(emp))
	}
	c.JSON(http.StatusOK, responses)
}

// Get は従業員を 1 件返します。
func (h *EmployeeHandler) Get(c *gin.Context) {
	found, err := h.svc.GetEmployee(c.Request.Context(), employee.GetEmployeeInput{
		EmployeeID: c.Param("employee_id"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toEmployeeResponse(found))
}

// Delete は従業員と、その従業員の全勤怠レコードを削除します。
func (h *EmployeeHandler) Delete(c *gin.Context) {
	result, err := h.svc.DeleteEmployee(c.Request.Context(), employee.DeleteEmployeeInput{
		EmployeeID: c.Param("employee_id"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":                    fmt.Sprintf("Employee '%s' deleted successfully", result.EmployeeID),
		"deleted_employee":           result.DeletedEmployees,
		"deleted_attendance_records": result.DeletedAttendance,
	})
}
