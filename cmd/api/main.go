package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/squad-internal/hr-backend-go/internal/config"
	appHTTP "github.com/squad-internal/hr-backend-go/internal/handler/http"
	"github.com/squad-internal/hr-backend-go/internal/pkg/database"
	"github.com/squad-internal/hr-backend-go/internal/pkg/email"
	"github.com/squad-internal/hr-backend-go/internal/pkg/jwt"
	"github.com/squad-internal/hr-backend-go/internal/pkg/oauth"
	"github.com/squad-internal/hr-backend-go/internal/repository/postgresql"
	authService "github.com/squad-internal/hr-backend-go/internal/service/auth"
	dashboardService "github.com/squad-internal/hr-backend-go/internal/service/dashboard"
	employeeService "github.com/squad-internal/hr-backend-go/internal/service/employee"
	holidayService "github.com/squad-internal/hr-backend-go/internal/service/holiday"
	leaveService "github.com/squad-internal/hr-backend-go/internal/service/leave"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	txManager := postgresql.NewTxManager(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	emailService, err := email.NewService(cfg.SMTP, cfg.App.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	authSvc := authService.NewAuthService(userRepo, jwtService, refreshTokenRepo)
	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo, employeeRepo, userRepo, txManager, emailService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, userRepo, txManager)
	holidaySvc := holidayService.NewHolidayService(holidayRepo)
	dashboardSvc := dashboardService.NewDashboardService(leaveRequestRepo, employeeRepo, holidayRepo)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc, googleService)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	holidayHandler := appHTTP.NewHolidayHandler(holidaySvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)

	router := appHTTP.NewRouter(
		cfg.App.Env,
		jwtService,
		authHandler,
		leaveHandler,
		employeeHandler,
		holidayHandler,
		dashboardHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
