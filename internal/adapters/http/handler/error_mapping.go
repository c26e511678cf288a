package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/codex-rest-clean-arch/internal/core/attendance"
	"github.com/ogurasousui/codex-rest-clean-arch/internal/core/employee"
)

// writeError はドメインエラーを HTTP ステータスと JSON エンベロープに変換します。
// 分類外のエラーは詳細をサーバー側ログに残し、呼び出し元には汎用メッセージだけを
// 返します。
func writeError(c *gin.Context, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, employee.ErrInvalidEmployeeID),
		errors.Is(err, employee.ErrInvalidFullName),
		errors.Is(err, employee.ErrInvalidEmail),
		errors.Is(err, employee.ErrInvalidDepartment),
		errors.Is(err, employee.ErrSuspiciousInput),
		errors.Is(err, attendance.ErrInvalidEmployeeID),
		errors.Is(err, attendance.ErrMalformedDate),
		errors.Is(err, attendance.ErrFutureDate),
		errors.Is(err, attendance.ErrDateTooOld),
		errors.Is(err, attendance.ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, employee.ErrEmployeeIDAlreadyExists),
		errors.Is(err, employee.ErrEmailAlreadyExists),
		errors.Is(err, attendance.ErrAlreadyMarked):
		return http.StatusConflict
	case errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, attendance.ErrEmployeeNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
