package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/ashishu703/facial-attendence-backend/internal/config"
	appHTTP "github.com/ashishu703/facial-attendence-backend/internal/handler/http"
	"github.com/ashishu703/facial-attendence-backend/internal/pkg/cron"
	"github.com/ashishu703/facial-attendence-backend/internal/pkg/database"
	"github.com/ashishu703/facial-attendence-backend/internal/pkg/email"
	"github.com/ashishu703/facial-attendence-backend/internal/pkg/events"
	"github.com/ashishu703/facial-attendence-backend/internal/pkg/jwt"
	"github.com/ashishu703/facial-attendence-backend/internal/pkg/storage"
	"github.com/ashishu703/facial-attendence-backend/internal/pkg/whatsapp"
	"github.com/ashishu703/facial-attendence-backend/internal/repository/postgresql"
	attendanceService "github.com/ashishu703/facial-attendence-backend/internal/service/attendance"
	authService "github.com/ashishu703/facial-attendence-backend/internal/service/auth"
	employeeService "github.com/ashishu703/facial-attendence-backend/internal/service/employee"
	"github.com/ashishu703/facial-attendence-backend/internal/service/file"
	notificationService "github.com/ashishu703/facial-attendence-backend/internal/service/notification"
	organizationService "github.com/ashishu703/facial-attendence-backend/internal/service/organization"
	presenceService "github.com/ashishu703/facial-attendence-backend/internal/service/presence"
	shiftService "github.com/ashishu703/facial-attendence-backend/internal/service/shift"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	organizationRepo := postgresql.NewOrganizationRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	detectionRepo := postgresql.NewDetectionRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage: ", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	bus := events.NewBus()
	calculator := attendanceService.NewMetricsCalculator(cfg.Attendance.MinOTMinutes)

	fileSvc := file.NewFileService(fileStorage)
	presenceSvc := presenceService.NewPresenceService(detectionRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		employeeRepo,
		shiftRepo,
		presenceSvc,
		calculator,
		fileSvc,
		bus,
	)
	organizationSvc := organizationService.NewOrganizationService(organizationRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	shiftSvc := shiftService.NewShiftService(shiftRepo)
	authSvc := authService.NewAuthService(organizationRepo, jwtService)

	emailSender := email.NewSender(cfg.SMTP)
	whatsappClient := whatsapp.NewClient(cfg.WhatsApp)
	notificationSvc := notificationService.NewNotificationService(
		notificationRepo,
		employeeRepo,
		emailSender,
		whatsappClient,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go notificationSvc.Run(ctx, bus, cfg.Attendance.NotificationDispatchGap)

	scheduler := cron.NewScheduler()
	attendanceJobs := cron.NewAttendanceJobs(
		attendanceRepo,
		employeeRepo,
		shiftRepo,
		organizationRepo,
		calculator,
		bus,
		cfg.Attendance.SweepInterval,
		cfg.Attendance.AbsenceInterval,
	)
	attendanceJobs.RegisterJobs(scheduler)
	cron.NewPresenceRetentionJob(detectionRepo, cfg.Attendance.PresenceRetentionDays).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	authHandler := appHTTP.NewAuthHandler(authSvc)
	organizationHandler := appHTTP.NewOrganizationHandler(organizationSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	shiftHandler := appHTTP.NewShiftHandler(shiftSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	presenceHandler := appHTTP.NewPresenceHandler(presenceSvc)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		organizationHandler,
		employeeHandler,
		shiftHandler,
		attendanceHandler,
		presenceHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
