package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/adeyemi/siwes-portal/internal/app/controllers"
	"github.com/adeyemi/siwes-portal/internal/app/models"
	"github.com/adeyemi/siwes-portal/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	attendanceController *controllers.AttendanceController,
	logbookController *controllers.LogbookController,
	assignmentController *controllers.AssignmentController,
	notificationController *controllers.NotificationController,
	itfFormController *controllers.ITFFormController,
	supervisorController *controllers.SupervisorController,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	// --- Public auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authController.Signup)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
	}

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.POST("/auth/change-password", authController.ChangePassword)

		users := authenticated.Group("/users")
		{
			users.GET("/me", userController.Me)
			users.PATCH("/me", userController.UpdateMe)
		}

		// Attendance: marking and edits are industry-supervisor only, viewing
		// is authorized inside the service per caller role.
		attendance := authenticated.Group("/attendance")
		{
			attendance.GET("/supervisor/students",
				authMiddleware.RoleRequired(models.SupervisorRoles...),
				assignmentController.MyStudents)
			attendance.GET("/:studentId", attendanceController.ListForStudent)

			attendanceSupervisor := attendance.Group("")
			attendanceSupervisor.Use(authMiddleware.RoleRequired(models.RoleIndustrySupervisor))
			{
				attendanceSupervisor.POST("", attendanceController.Mark)
				attendanceSupervisor.PATCH("/:attendanceId", attendanceController.Update)
			}
		}

		logbook := authenticated.Group("/logbook")
		{
			logbook.GET("/students/:studentId", logbookController.ListForStudent)

			logbookStudent := logbook.Group("")
			logbookStudent.Use(authMiddleware.RoleRequired(models.RoleStudent))
			{
				logbookStudent.POST("", logbookController.Create)
				logbookStudent.PATCH("/:id", logbookController.Update)
				logbookStudent.POST("/:id/image", logbookController.UploadImage)
				logbookStudent.POST("/:id/submit", logbookController.Submit)
			}

			logbookReviewer := logbook.Group("")
			logbookReviewer.Use(authMiddleware.RoleRequired(models.RoleSchoolSupervisor, models.RoleAdmin))
			{
				logbookReviewer.POST("/:id/review", logbookController.Review)
			}
		}

		// Admin-driven supervisor assignment.
		assignments := authenticated.Group("/supervisors/assignments")
		assignments.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			assignments.GET("", userController.ListStudents)
			assignments.POST("/industry", assignmentController.AssignIndustry)
			assignments.POST("/school", assignmentController.AssignSchool)
			assignments.POST("/school/random", assignmentController.RandomAssign)
		}

		// Students link their placement's industry supervisor themselves.
		industrySupervisors := authenticated.Group("/industry-supervisors")
		industrySupervisors.Use(authMiddleware.RoleRequired(models.RoleStudent))
		{
			industrySupervisors.GET("/status", supervisorController.Status)
			industrySupervisors.GET("/export-template", supervisorController.Template)
			industrySupervisors.POST("/upload", supervisorController.UploadCSV)
		}

		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", notificationController.ListMine)
			notifications.PATCH("/:id/read", notificationController.MarkRead)
		}

		itfForms := authenticated.Group("/itf-forms")
		{
			itfForms.GET("", itfFormController.List)
			itfForms.GET("/:id/download", itfFormController.Download)
			itfForms.POST("", authMiddleware.RoleRequired(models.RoleAdmin), itfFormController.Upload)
			itfForms.DELETE("/:id", authMiddleware.RoleRequired(models.RoleAdmin), itfFormController.Delete)
		}

		// --- Admin routes ---
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			admin.GET("/users", userController.List)
			admin.GET("/users/:id", userController.Get)
			admin.PATCH("/users/:id/active", userController.SetActive)
			admin.POST("/users/upload-csv", userController.ImportCSV)

			admin.POST("/notifications", notificationController.Create)
			admin.GET("/notifications", notificationController.List)
			admin.GET("/notifications/stats", notificationController.Stats)
			admin.GET("/notifications/:id", notificationController.Get)
			admin.PATCH("/notifications/:id", notificationController.Update)
			admin.DELETE("/notifications/:id", notificationController.Delete)
		}
	}
}
