package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/paf-hr/hrms-backend-go/internal/config"
	appHTTP "github.com/paf-hr/hrms-backend-go/internal/handler/http"
	"github.com/paf-hr/hrms-backend-go/internal/pkg/database"
	"github.com/paf-hr/hrms-backend-go/internal/pkg/jwt"
	"github.com/paf-hr/hrms-backend-go/internal/repository/postgresql"
	attendanceService "github.com/paf-hr/hrms-backend-go/internal/service/attendance"
	employeeService "github.com/paf-hr/hrms-backend-go/internal/service/employee"
	ledgerService "github.com/paf-hr/hrms-backend-go/internal/service/ledger"
	penaltyService "github.com/paf-hr/hrms-backend-go/internal/service/penalty"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolConfig{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgresql.Migrate(context.Background(), db); err != nil {
		slog.Error("Error applying migrations", "error", err)
		os.Exit(1)
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	ledgerRepo := postgresql.NewLedgerRepository(db)
	settingsRepo := postgresql.NewPenaltySettingsRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)

	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, settingsRepo)
	penaltySvc := penaltyService.NewPenaltyService(settingsRepo, attendanceRepo, ledgerRepo)
	ledgerSvc := ledgerService.NewLedgerService(ledgerRepo)

	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, cfg.Import.MaxUploadMB)
	penaltyHandler := appHTTP.NewPenaltyHandler(penaltySvc, ledgerSvc, JWTService)
	ledgerHandler := appHTTP.NewLedgerHandler(ledgerSvc, JWTService)

	router := appHTTP.NewRouter(
		JWTService,
		employeeHandler,
		attendanceHandler,
		penaltyHandler,
		ledgerHandler,
		cfg.App,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("Server running", "addr", "http://localhost"+port, "env", cfg.App.Env)
	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("Server error", "error", err)
	}
}
