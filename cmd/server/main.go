package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/ogurasousui/codex-rest-clean-arch/internal/adapters/http/handler"
	"github.com/ogurasousui/codex-rest-clean-arch/internal/adapters/repository/postgres"
	"github.com/ogurasousui/codex-rest-clean-arch/internal/core/attendance"
	"github.com/ogurasousui/codex-rest-clean-arch/internal/core/employee"
	"github.com/ogurasousui/codex-rest-clean-arch/internal/platform/config"
	pg "github.com/ogurasousui/codex-rest-clean-arch/internal/platform/db/postgres"
	"github.com/ogurasousui/codex-rest-clean-arch/internal/platform/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// .env が無い環境では黙って既定値で動きます。
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to initialize database pool: %v", err)
	}
	defer dbPool.Close()

	txManager := pg.NewTransactionManager(dbPool)
	employeeRepo := postgres.NewEmployeeRepository(dbPool)
	attendanceRepo := postgres.NewAttendanceRepository(dbPool)

	employeeSvc := employee.NewService(employeeRepo, attendanceRepo, nil, txManager)
	attendanceSvc := attendance.NewService(attendanceRepo, attendanceRepo, nil, txManager)

	router := handler.NewRouter(
		handler.NewEmployeeHandler(employeeSvc),
		handler.NewAttendanceHandler(attendanceSvc),
		cfg.Server.CORSAllowedOrigins,
	)
	httpServer := server.New(cfg.Server.ListenAddr, router)

	log.Printf("HTTP server listening on %s", cfg.Server.ListenAddr)

	if err := httpServer.Run(ctx); err != nil {
		log.Fatalf("server stopped with error: %v", err)
	}
}
