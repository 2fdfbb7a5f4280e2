package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/phdportal/internal/app/controllers"
	"github.com/yigit/phdportal/internal/app/models"
	"github.com/yigit/phdportal/internal/app/models/dto"
	"github.com/yigit/phdportal/internal/middleware"
	"github.com/yigit/phdportal/internal/pkg/auth"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	jwtService *auth.JWTService,
	authController *controllers.AuthController,
	facultyController *controllers.FacultyController,
	departmentController *controllers.DepartmentController,
	scholarController *controllers.ScholarController,
	supervisorController *controllers.SupervisorController,
	assignmentController *controllers.AssignmentController,
) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	v1.POST("/auth/login", authController.Login)

	faculties := v1.Group("/faculties")
	{
		faculties.GET("", facultyController.GetAllFaculties)
		faculties.GET("/:id", facultyController.GetFacultyByID)
	}

	departments := v1.Group("/departments")
	{
		departments.GET("", departmentController.GetAllDepartments)
		departments.GET("/:id", departmentController.GetDepartmentByID)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(middleware.JWTAuth(jwtService))
	{
		adminOnly := middleware.RoleRequired(models.RoleAdmin)
		staff := middleware.RoleRequired(models.RoleAdmin, models.RoleDepartment, models.RoleCoordinator)
		adminOrCoordinator := middleware.RoleRequired(models.RoleAdmin, models.RoleCoordinator)

		authenticated.GET("/auth/profile", authController.GetProfile)

		// Account management (admin only)
		users := authenticated.Group("/auth/users", adminOnly)
		{
			users.POST("", authController.CreateUser)
			users.GET("", authController.GetUsers)
			users.DELETE("/:id", authController.DeleteUser)
		}

		// Faculty and department management (admin only)
		authenticated.POST("/faculties", adminOnly, facultyController.CreateFaculty)
		adminDepartments := authenticated.Group("/departments", adminOnly)
		{
			adminDepartments.POST("", departmentController.CreateDepartment)
			adminDepartments.PUT("/:id", departmentController.UpdateDepartment)
			adminDepartments.DELETE("/:id", departmentController.DeleteDepartment)
		}

		// Scholar records
		scholars := authenticated.Group("/scholars", staff)
		{
			scholars.GET("", scholarController.GetScholars)
			scholars.GET("/:id", scholarController.GetScholarByID)
			scholars.POST("", scholarController.CreateScholar)
			scholars.PUT("/:id", scholarController.UpdateScholar)
			scholars.DELETE("/:id", scholarController.DeleteScholar)

			scholars.POST("/import", scholarController.ImportScholars)
			scholars.GET("/export", scholarController.ExportScholars)
			scholars.GET("/duplicates", scholarController.GetDuplicateReport)
			scholars.POST("/eligibility/recompute", scholarController.RecomputeEligibility)

			// Workflow
			scholars.PUT("/:id/marks", scholarController.UpdateMarks)
			scholars.PUT("/:id/status", scholarController.ChangeStatus)
			scholars.POST("/forward", scholarController.ForwardScholars)
			scholars.PUT("/:id/department-result", scholarController.PublishDepartmentResult)
			scholars.PUT("/:id/director-result", adminOrCoordinator, scholarController.PublishDirectorResult)
		}

		// Supervisors and assignments
		supervisors := authenticated.Group("/supervisors", staff)
		{
			supervisors.GET("", supervisorController.GetSupervisors)
			supervisors.GET("/:id", supervisorController.GetSupervisorByID)
			supervisors.POST("", adminOnly, supervisorController.CreateSupervisor)
			supervisors.PUT("/:id", adminOnly, supervisorController.UpdateSupervisor)
			supervisors.DELETE("/:id", adminOnly, supervisorController.DeleteSupervisor)

			supervisors.GET("/:id/vacancies", supervisorController.GetVacancies)
			supervisors.POST("/reconcile", adminOnly, supervisorController.ReconcileCounters)

			supervisors.GET("/:id/candidates", assignmentController.GetCandidates)
			supervisors.POST("/:id/assignments", assignmentController.AssignScholar)
		}

		authenticated.POST("/assignments/unassign", staff, assignmentController.UnassignScholar)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
