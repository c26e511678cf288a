package handler

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter は REST API のルーティングを構築します。
func NewRouter(employees *EmployeeHandler, attendance *AttendanceHandler, corsAllowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(corsConfig(corsAllowedOrigins)))

	router.GET("/health", Health)

	api := router.Group("/api")

	emp := api.Group("/employees")
	emp.POST("", employees.Register)
	emp.GET("", employees.List)
	emp.GET("/:employee_id", employees.Get)
	emp.DELETE("/:employee_id", employees.Delete)

	att := api.Group("/attendance")
	att.POST("", attendance.Mark)
	att.GET("", attendance.ListAll)
	att.GET("/:employee_id", attendance.ListForEmployee)

	return router
}

func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}

	for _, origin := range allowedOrigins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}

	cfg.AllowOrigins = allowedOrigins
	return cfg
}
