package main

import (
	"fmt"
	"net/http"

	"github.com/rotahr/payroll-backend-go/internal/config"
	appHTTP "github.com/rotahr/payroll-backend-go/internal/handler/http"
	"github.com/rotahr/payroll-backend-go/internal/pkg/database"
	"github.com/rotahr/payroll-backend-go/internal/pkg/jwt"
	"github.com/rotahr/payroll-backend-go/internal/repository/postgresql"
	holidayService "github.com/rotahr/payroll-backend-go/internal/service/holiday"
	payrollService "github.com/rotahr/payroll-backend-go/internal/service/payroll"
	rateProfileService "github.com/rotahr/payroll-backend-go/internal/service/rateprofile"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn, cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	payrollRepo := postgresql.NewPayrollRepository(db)
	rateProfileRepo := postgresql.NewRateProfileRepository(db)
	bankHolidayRepo := postgresql.NewBankHolidayRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, rateProfileRepo, bankHolidayRepo, timesheetRepo)
	rateProfileSvc := rateProfileService.NewRateProfileService(db, rateProfileRepo)
	holidaySvc := holidayService.NewBankHolidayService(db, bankHolidayRepo)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	rateProfileHandler := appHTTP.NewRateProfileHandler(rateProfileSvc)
	bankHolidayHandler := appHTTP.NewBankHolidayHandler(holidaySvc)

	router := appHTTP.NewRouter(
		JWTService,
		payrollHandler,
		rateProfileHandler,
		bankHolidayHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
