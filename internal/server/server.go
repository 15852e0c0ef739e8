package server

import (
	"net/http"
	"time"

	"bouncearound.com/daycare/internal/config"
	"bouncearound.com/daycare/internal/entity"
	"bouncearound.com/daycare/internal/middleware"
	"bouncearound.com/daycare/pkg/llm"
	"bouncearound.com/daycare/pkg/mailer"
	"bouncearound.com/daycare/pkg/ratelimit"
	"bouncearound.com/daycare/pkg/storage"
	"bouncearound.com/daycare/pkg/validator"

	activityHttp "bouncearound.com/daycare/internal/modules/activity/delivery/http"
	activityRepo "bouncearound.com/daycare/internal/modules/activity/repository"
	activityService "bouncearound.com/daycare/internal/modules/activity/service"

	adminHttp "bouncearound.com/daycare/internal/modules/admin/delivery/http"
	adminService "bouncearound.com/daycare/internal/modules/admin/service"

	alertHttp "bouncearound.com/daycare/internal/modules/alert/delivery/http"
	alertRepo "bouncearound.com/daycare/internal/modules/alert/repository"
	alertService "bouncearound.com/daycare/internal/modules/alert/service"

	announcementHttp "bouncearound.com/daycare/internal/modules/announcement/delivery/http"
	announcementRepo "bouncearound.com/daycare/internal/modules/announcement/repository"
	announcementService "bouncearound.com/daycare/internal/modules/announcement/service"

	attendanceHttp "bouncearound.com/daycare/internal/modules/attendance/delivery/http"
	attendanceRepo "bouncearound.com/daycare/internal/modules/attendance/repository"
	attendanceService "bouncearound.com/daycare/internal/modules/attendance/service"

	childHttp "bouncearound.com/daycare/internal/modules/child/delivery/http"
	childRepo "bouncearound.com/daycare/internal/modules/child/repository"
	childService "bouncearound.com/daycare/internal/modules/child/service"

	complianceHttp "bouncearound.com/daycare/internal/modules/compliance/delivery/http"
	complianceRepo "bouncearound.com/daycare/internal/modules/compliance/repository"
	complianceService "bouncearound.com/daycare/internal/modules/compliance/service"

	dashboardHttp "bouncearound.com/daycare/internal/modules/dashboard/delivery/http"
	dashboardService "bouncearound.com/daycare/internal/modules/dashboard/service"

	contactHttp "bouncearound.com/daycare/internal/modules/emergencycontact/delivery/http"
	contactRepo "bouncearound.com/daycare/internal/modules/emergencycontact/repository"
	contactService "bouncearound.com/daycare/internal/modules/emergencycontact/service"

	incidentHttp "bouncearound.com/daycare/internal/modules/incident/delivery/http"
	incidentRepo "bouncearound.com/daycare/internal/modules/incident/repository"
	incidentService "bouncearound.com/daycare/internal/modules/incident/service"

	medicationHttp "bouncearound.com/daycare/internal/modules/medication/delivery/http"
	medicationRepo "bouncearound.com/daycare/internal/modules/medication/repository"
	medicationService "bouncearound.com/daycare/internal/modules/medication/service"

	notifHttp "bouncearound.com/daycare/internal/modules/notification/delivery/http"
	notifRepo "bouncearound.com/daycare/internal/modules/notification/repository"
	notifService "bouncearound.com/daycare/internal/modules/notification/service"

	parentHttp "bouncearound.com/daycare/internal/modules/parent/delivery/http"
	parentRepo "bouncearound.com/daycare/internal/modules/parent/repository"
	parentService "bouncearound.com/daycare/internal/modules/parent/service"

	photoHttp "bouncearound.com/daycare/internal/modules/photo/delivery/http"
	photoRepo "bouncearound.com/daycare/internal/modules/photo/repository"
	photoService "bouncearound.com/daycare/internal/modules/photo/service"

	pickupHttp "bouncearound.com/daycare/internal/modules/pickup/delivery/http"
	pickupRepo "bouncearound.com/daycare/internal/modules/pickup/repository"
	pickupService "bouncearound.com/daycare/internal/modules/pickup/service"

	reportHttp "bouncearound.com/daycare/internal/modules/report/delivery/http"
	reportRepo "bouncearound.com/daycare/internal/modules/report/repository"
	reportService "bouncearound.com/daycare/internal/modules/report/service"

	searchHttp "bouncearound.com/daycare/internal/modules/search/delivery/http"
	searchService "bouncearound.com/daycare/internal/modules/search/service"

	uploadHttp "bouncearound.com/daycare/internal/modules/upload/delivery/http"
	uploadService "bouncearound.com/daycare/internal/modules/upload/service"

	userHttp "bouncearound.com/daycare/internal/modules/user/delivery/http"
	userRepo "bouncearound.com/daycare/internal/modules/user/repository"
	userService "bouncearound.com/daycare/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps are the process-level resources. Redis, Search, Storage and
// Generator may be nil; the features behind them degrade accordingly.
type Deps struct {
	Config    *config.Config
	DB        *gorm.DB
	Redis     *redis.Client
	Search    meilisearch.ServiceManager
	Storage   storage.FileStorage
	Generator llm.TextGenerator
	Mailer    mailer.Mailer
}

type Server struct {
	engine *gin.Engine
	alerts alertService.AlertService
}

func NewServer(deps Deps) *Server {
	cfg := deps.Config
	db := deps.DB
	loc := cfg.Attendance.Location
	limiter := ratelimit.New(deps.Redis)
	if deps.Mailer == nil {
		deps.Mailer = mailer.New(mailer.SMTPOptions{})
	}

	validator.Register()

	// Repositories
	users := userRepo.NewUserRepository(db)
	children := childRepo.NewChildRepository(db)
	parents := parentRepo.NewParentRepository(db)
	contacts := contactRepo.NewContactRepository(db)
	pickups := pickupRepo.NewPickupRepository(db)
	attendance := attendanceRepo.NewAttendanceRepository(db)
	activities := activityRepo.NewActivityRepository(db)
	incidents := incidentRepo.NewIncidentRepository(db)
	medications := medicationRepo.NewMedicationRepository(db)
	forms := complianceRepo.NewEnrollmentFormRepository(db)
	immunizations := complianceRepo.NewImmunizationRepository(db)
	credentials := complianceRepo.NewCredentialRepository(db)
	alerts := alertRepo.NewAlertRepository(db)
	photos := photoRepo.NewPhotoRepository(db)
	reports := reportRepo.NewReportRepository(db)
	announcements := announcementRepo.NewAnnouncementRepository(db)
	notifications := notifRepo.NewNotificationRepository(db)

	// Services
	searchSvc := searchService.NewMeiliSearchService(deps.Search)
	notificationSvc := notifService.NewNotificationService(notifications, users, deps.Redis)

	authSvc := userService.NewAuthService(users, limiter, cfg.JWTSecret, cfg.JWTTTL, userService.LoginPolicy{
		Attempts: cfg.LoginRateLimit,
		Window:   cfg.LoginRateWindow,
	})
	adminSvc := adminService.NewAdminService(users, authSvc)

	childSvc := childService.NewChildService(children, searchSvc)
	parentSvc := parentService.NewParentService(parents, children, searchSvc)
	contactSvc := contactService.NewContactService(contacts, children)
	pickupSvc := pickupService.NewPickupService(pickups, children, searchSvc)

	attendanceSvc := attendanceService.NewAttendanceService(attendance, children, cfg.Attendance)
	activitySvc := activityService.NewActivityService(activities, children, loc)

	incidentSvc := incidentService.NewIncidentService(incidents, children, notificationSvc, loc)
	medicationSvc := medicationService.NewMedicationService(medications, children, loc)

	formSvc := complianceService.NewEnrollmentService(forms, children)
	immunizationSvc := complianceService.NewImmunizationService(immunizations, children, loc)
	credentialSvc := complianceService.NewCredentialService(credentials, users, loc)
	alertSvc := alertService.NewAlertService(alertService.Deps{
		Alerts:        alerts,
		Credentials:   credentials,
		Immunizations: immunizations,
		Forms:         forms,
		Contacts:      contactSvc,
		Notifier:      notificationSvc,
		Location:      loc,
	})

	uploadSvc := uploadService.NewUploadService(deps.Storage, uploadService.Policy{
		MaxBytes:          cfg.MaxUploadBytes,
		AllowedExtensions: cfg.AllowedFileExtensions,
	})
	photoSvc := photoService.NewPhotoService(photos, children, uploadSvc, loc)
	reportSvc := reportService.NewReportService(reportService.Deps{
		Reports:    reports,
		Children:   children,
		Activities: activities,
		Parents:    parents,
		Photos:     photos,
		Generator:  deps.Generator,
		Mailer:     deps.Mailer,
		Limiter:    limiter,
		Cooldown:   cfg.ReportGenerateCooldown,
	})
	announcementSvc := announcementService.NewAnnouncementService(announcements, loc)
	dashboardSvc := dashboardService.NewDashboardService(dashboardService.Deps{
		Children:      children,
		Attendance:    attendance,
		Incidents:     incidents,
		Credentials:   credentials,
		Immunizations: immunizations,
		Forms:         forms,
		Alerts:        alerts,
		Location:      loc,
	})

	// Handlers
	authHandler := userHttp.NewAuthHandler(authSvc)
	adminHandler := adminHttp.NewAdminHandler(adminSvc)
	childHandler := childHttp.NewChildHandler(childSvc)
	parentHandler := parentHttp.NewParentHandler(parentSvc)
	contactHandler := contactHttp.NewContactHandler(contactSvc)
	pickupHandler := pickupHttp.NewPickupHandler(pickupSvc)
	attendanceHandler := attendanceHttp.NewAttendanceHandler(attendanceSvc)
	activityHandler := activityHttp.NewActivityHandler(activitySvc)
	incidentHandler := incidentHttp.NewIncidentHandler(incidentSvc)
	medicationHandler := medicationHttp.NewMedicationHandler(medicationSvc)
	complianceHandler := complianceHttp.NewComplianceHandler(formSvc, immunizationSvc, credentialSvc)
	alertHandler := alertHttp.NewAlertHandler(alertSvc)
	uploadHandler := uploadHttp.NewUploadHandler(uploadSvc)
	photoHandler := photoHttp.NewPhotoHandler(photoSvc)
	reportHandler := reportHttp.NewReportHandler(reportSvc)
	announcementHandler := announcementHttp.NewAnnouncementHandler(announcementSvc)
	notificationHandler := notifHttp.NewNotificationHandler(notificationSvc, deps.Redis, cfg.AllowedOrigins)
	searchHandler := searchHttp.NewSearchHandler(searchSvc)
	dashboardHandler := dashboardHttp.NewDashboardHandler(dashboardSvc)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger("/health"))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"name": "Bounce Around daycare API", "version": "v1"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authMiddleware := middleware.NewAuthMiddleware(users, cfg.JWTSecret)

	api := router.Group("/api/v1")

	// Public routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		me := protected.Group("/auth/me")
		{
			me.GET("", authHandler.Me)
			me.PUT("", authHandler.UpdateMe)
			me.PUT("/password", authHandler.ChangePassword)
		}

		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireCapability(entity.CapManageStaff))
		{
			adminGroup.GET("/users", adminHandler.GetAllUsers)
			adminGroup.POST("/users", adminHandler.CreateUser)
			adminGroup.PUT("/users/:id", adminHandler.UpdateUser)
			adminGroup.PATCH("/users/:id/deactivate", adminHandler.DeactivateUser)
			adminGroup.PATCH("/users/:id/activate", adminHandler.ActivateUser)
			adminGroup.DELETE("/users/:id", adminHandler.DeleteUser)
		}

		// Family registry
		childGroup := protected.Group("/children")
		{
			childGroup.POST("", childHandler.CreateChild)
			childGroup.GET("", childHandler.GetChildren)
			childGroup.GET("/:id", childHandler.GetChild)
			childGroup.PUT("/:id", childHandler.UpdateChild)
			childGroup.PATCH("/:id/deactivate", childHandler.DeactivateChild)
			childGroup.PATCH("/:id/activate", childHandler.ActivateChild)
			childGroup.DELETE("/:id", childHandler.DeleteChild)
			childGroup.GET("/:id/parents", parentHandler.GetChildRelationships)
			childGroup.GET("/:id/photos", photoHandler.GetChildPhotos)
		}

		parentGroup := protected.Group("/parents")
		{
			parentGroup.POST("", parentHandler.CreateParent)
			parentGroup.GET("", parentHandler.GetParents)
			parentGroup.POST("/relationships", parentHandler.CreateRelationship)
			parentGroup.GET("/relationships/child/:child_id", parentHandler.GetChildRelationships)
			parentGroup.GET("/relationships/parent/:parent_id", parentHandler.GetParentRelationships)
			parentGroup.PUT("/relationships/:id", parentHandler.UpdateRelationship)
			parentGroup.DELETE("/relationships/:id", parentHandler.DeleteRelationship)
			parentGroup.GET("/:id", parentHandler.GetParent)
			parentGroup.PUT("/:id", parentHandler.UpdateParent)
			parentGroup.DELETE("/:id", parentHandler.DeleteParent)
		}

		contactGroup := protected.Group("/emergency-contacts")
		{
			contactGroup.POST("", contactHandler.CreateContact)
			contactGroup.GET("/child/:child_id", contactHandler.GetChildContacts)
			contactGroup.GET("/compliance/missing", contactHandler.GetMissingContacts)
			contactGroup.GET("/:id", contactHandler.GetContact)
			contactGroup.PUT("/:id", contactHandler.UpdateContact)
			contactGroup.DELETE("/:id", contactHandler.DeleteContact)
			contactGroup.PATCH("/:id/reorder/:new_priority", contactHandler.ReorderContact)
		}

		pickupGroup := protected.Group("/authorized-pickup")
		{
			pickupGroup.POST("", pickupHandler.CreatePickup)
			pickupGroup.GET("/child/:child_id", pickupHandler.GetChildPickups)
			pickupGroup.GET("/active", pickupHandler.GetActivePickups)
			pickupGroup.GET("/search/by-name", pickupHandler.SearchByName)
			pickupGroup.GET("/verify/:child_id/:pickup_name", pickupHandler.VerifyPickup)
			pickupGroup.GET("/photo-verification-required", pickupHandler.GetPhotoVerificationRequired)
			pickupGroup.GET("/:id", pickupHandler.GetPickup)
			pickupGroup.PUT("/:id", pickupHandler.UpdatePickup)
			pickupGroup.PATCH("/:id/deactivate", pickupHandler.DeactivatePickup)
			pickupGroup.PATCH("/:id/activate", pickupHandler.ActivatePickup)
			pickupGroup.DELETE("/:id", pickupHandler.DeletePickup)
		}

		// Daily operations
		attendanceGroup := protected.Group("/attendance")
		{
			attendanceGroup.POST("/check-in", attendanceHandler.CheckIn)
			attendanceGroup.GET("", attendanceHandler.GetAttendance)
			attendanceGroup.GET("/today", attendanceHandler.GetToday)
			attendanceGroup.GET("/today/checked-in", attendanceHandler.GetCheckedIn)
			attendanceGroup.GET("/child/:child_id", attendanceHandler.GetChildHistory)
			attendanceGroup.GET("/late-pickups", attendanceHandler.GetLatePickups)
			attendanceGroup.GET("/:id", attendanceHandler.GetRecord)
			attendanceGroup.PUT("/:id", attendanceHandler.UpdateRecord)
			attendanceGroup.PATCH("/:id/check-out", attendanceHandler.CheckOut)
			attendanceGroup.DELETE("/:id", attendanceHandler.DeleteRecord)
		}

		activityGroup := protected.Group("/activities")
		{
			activityGroup.POST("", activityHandler.CreateActivity)
			activityGroup.GET("", activityHandler.GetActivities)
			activityGroup.GET("/today", activityHandler.GetToday)
			activityGroup.GET("/child/:child_id", activityHandler.GetChildActivities)
			activityGroup.GET("/child/:child_id/date/:date", activityHandler.GetChildActivitiesForDate)
			activityGroup.GET("/summary/child/:child_id/date/:date", activityHandler.GetDailySummary)
			activityGroup.GET("/:id", activityHandler.GetActivity)
			activityGroup.PUT("/:id", activityHandler.UpdateActivity)
			activityGroup.DELETE("/:id", activityHandler.DeleteActivity)
		}

		// Health and safety
		incidentGroup := protected.Group("/incidents")
		{
			incidentGroup.POST("", incidentHandler.CreateIncident)
			incidentGroup.GET("", incidentHandler.GetIncidents)
			incidentGroup.GET("/child/:child_id", incidentHandler.GetChildIncidents)
			incidentGroup.GET("/pending/parent-notification", incidentHandler.GetPendingParentNotification)
			incidentGroup.GET("/requiring/dcfs-notification", incidentHandler.GetRequiringDCFS)
			incidentGroup.GET("/statistics/summary", incidentHandler.GetStatistics)
			incidentGroup.GET("/:id", incidentHandler.GetIncident)
			incidentGroup.PUT("/:id", incidentHandler.UpdateIncident)
			incidentGroup.DELETE("/:id", incidentHandler.DeleteIncident)
			incidentGroup.PATCH("/:id/notify-parent", incidentHandler.NotifyParent)
			incidentGroup.PATCH("/:id/notify-dcfs", incidentHandler.NotifyDCFS)
		}

		medicationGroup := protected.Group("/medications")
		{
			medicationGroup.POST("/authorizations", medicationHandler.CreateAuthorization)
			medicationGroup.GET("/authorizations", medicationHandler.GetAuthorizations)
			medicationGroup.GET("/authorizations/child/:child_id", medicationHandler.GetChildAuthorizations)
			medicationGroup.GET("/authorizations/active/today", medicationHandler.GetActiveToday)
			medicationGroup.GET("/authorizations/:id", medicationHandler.GetAuthorization)
			medicationGroup.PUT("/authorizations/:id", medicationHandler.UpdateAuthorization)
			medicationGroup.PATCH("/authorizations/:id/deactivate", medicationHandler.DeactivateAuthorization)
			medicationGroup.DELETE("/authorizations/:id", medicationHandler.DeleteAuthorization)

			medicationGroup.POST("/logs", medicationHandler.CreateLog)
			medicationGroup.GET("/logs", medicationHandler.GetLogs)
			medicationGroup.GET("/logs/child/:child_id", medicationHandler.GetChildLogs)
			medicationGroup.GET("/logs/today", medicationHandler.GetTodayLogs)
			medicationGroup.GET("/logs/authorization/:authorization_id", medicationHandler.GetAuthorizationLogs)
			medicationGroup.GET("/logs/:id", medicationHandler.GetLog)
			medicationGroup.PUT("/logs/:id", medicationHandler.UpdateLog)
			medicationGroup.DELETE("/logs/:id", medicationHandler.DeleteLog)

			medicationGroup.GET("/schedule/child/:child_id/date/:date", medicationHandler.GetSchedule)
		}

		// Compliance
		complianceGroup := protected.Group("/compliance")
		{
			complianceGroup.POST("/enrollment-forms", complianceHandler.CreateEnrollmentForm)
			complianceGroup.GET("/enrollment-forms", complianceHandler.GetEnrollmentForms)
			complianceGroup.GET("/enrollment-forms/incomplete/list", complianceHandler.GetIncompleteForms)
			complianceGroup.GET("/enrollment-forms/child/:child_id", complianceHandler.GetChildEnrollmentForm)
			complianceGroup.GET("/enrollment-forms/:id", complianceHandler.GetEnrollmentForm)
			complianceGroup.PUT("/enrollment-forms/:id", complianceHandler.UpdateEnrollmentForm)

			complianceGroup.POST("/immunizations", complianceHandler.CreateImmunization)
			complianceGroup.GET("/immunizations", complianceHandler.GetImmunizations)
			complianceGroup.GET("/immunizations/expiring/soon", complianceHandler.GetExpiringImmunizations)
			complianceGroup.GET("/immunizations/child/:child_id", complianceHandler.GetChildImmunizations)
			complianceGroup.GET("/immunizations/:id", complianceHandler.GetImmunization)
			complianceGroup.PUT("/immunizations/:id", complianceHandler.UpdateImmunization)
			complianceGroup.DELETE("/immunizations/:id", complianceHandler.DeleteImmunization)

			complianceGroup.POST("/staff-credentials", complianceHandler.CreateCredential)
			complianceGroup.GET("/staff-credentials", complianceHandler.GetCredentials)
			complianceGroup.GET("/staff-credentials/expiring/soon", complianceHandler.GetExpiringCredentials)
			complianceGroup.GET("/staff-credentials/expired/list", complianceHandler.GetExpiredCredentials)
			complianceGroup.GET("/staff-credentials/user/:user_id", complianceHandler.GetUserCredentials)
			complianceGroup.GET("/staff-credentials/:id", complianceHandler.GetCredential)
			complianceGroup.PUT("/staff-credentials/:id", complianceHandler.UpdateCredential)
			complianceGroup.DELETE("/staff-credentials/:id", complianceHandler.DeleteCredential)

			complianceGroup.GET("/alerts", alertHandler.GetAlerts)

			manage := complianceGroup.Group("")
			manage.Use(authMiddleware.RequireCapability(entity.CapManageCompliance))
			{
				manage.PATCH("/alerts/:id/resolve", alertHandler.ResolveAlert)
				manage.POST("/alerts/scan", alertHandler.RunScan)
			}
		}

		// Communication
		reportGroup := protected.Group("/daily-reports")
		{
			reportGroup.POST("", reportHandler.CreateReport)
			reportGroup.POST("/generate", reportHandler.GenerateReport)
			reportGroup.GET("", reportHandler.GetReports)
			reportGroup.GET("/:id", reportHandler.GetReport)
			reportGroup.PUT("/:id", reportHandler.UpdateReport)
			reportGroup.DELETE("/:id", reportHandler.DeleteReport)
			reportGroup.POST("/:id/send", reportHandler.SendReport)
			reportGroup.POST("/:id/photos", reportHandler.AddPhoto)
			reportGroup.GET("/:id/photos", reportHandler.GetReportPhotos)
		}

		announcementGroup := protected.Group("/announcements")
		{
			announcementGroup.POST("", announcementHandler.CreateAnnouncement)
			announcementGroup.GET("", announcementHandler.GetAnnouncements)
			announcementGroup.GET("/active", announcementHandler.GetActiveAnnouncements)
			announcementGroup.GET("/:id", announcementHandler.GetAnnouncement)
			announcementGroup.PUT("/:id", announcementHandler.UpdateAnnouncement)
			announcementGroup.DELETE("/:id", announcementHandler.DeleteAnnouncement)
		}

		photoGroup := protected.Group("/photos")
		{
			photoGroup.POST("", photoHandler.CreatePhoto)
			photoGroup.POST("/upload", photoHandler.UploadPhoto)
			photoGroup.GET("", photoHandler.GetPhotos)
			photoGroup.GET("/:id", photoHandler.GetPhoto)
			photoGroup.PUT("/:id", photoHandler.UpdatePhoto)
			photoGroup.DELETE("/:id", photoHandler.DeletePhoto)
			photoGroup.POST("/:id/children", photoHandler.TagChild)
			photoGroup.DELETE("/:id/children/:child_id", photoHandler.UntagChild)
		}

		// Supporting
		protected.POST("/uploads", uploadHandler.Upload)

		notificationGroup := protected.Group("/notifications")
		{
			notificationGroup.GET("", notificationHandler.GetNotifications)
			notificationGroup.GET("/unread-count", notificationHandler.UnreadCount)
			notificationGroup.PUT("/:id/read", notificationHandler.MarkAsRead)
			notificationGroup.PUT("/read-all", notificationHandler.MarkAllAsRead)
			notificationGroup.GET("/ws", notificationHandler.HandleWebSocket)
		}

		protected.GET("/search", searchHandler.Search)
		protected.GET("/dashboard/summary", dashboardHandler.GetSummary)
	}

	return &Server{
		engine: router,
		alerts: alertSvc,
	}
}

// Handler exposes the router for http.Server and tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Alerts is used by the scheduler to run the compliance scan.
func (s *Server) Alerts() alertService.AlertService {
	return s.alerts
}

func setupCORS(router *gin.Engine, origins []string) {
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
