package routes

import (
	"loanintake-backend/internal/adapters/http/handlers"
	"loanintake-backend/internal/adapters/http/middleware"
	"loanintake-backend/internal/adapters/persistence/repositories"
	"loanintake-backend/internal/config"
	"loanintake-backend/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all application routes
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	clientRepo := repositories.NewClientRepository(db)
	detailsRepo := repositories.NewClientDetailsRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	assignment := services.NewAssignmentPolicy(userRepo)
	clientService := services.NewClientService(clientRepo, detailsRepo, userRepo, assignment)
	approvalService := services.NewApprovalService(clientRepo, detailsRepo, userRepo)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg)
	clientHandler := handlers.NewClientHandler(clientService)
	employeeHandler := handlers.NewEmployeeHandler(clientService)
	applicationHandler := handlers.NewApplicationHandler(clientService)
	approvalHandler := handlers.NewApprovalHandler(approvalService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	healthHandler := handlers.NewHealthHandler()

	// Auth middleware
	auth := middleware.AuthMiddleware(cfg)

	// Health and banner
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.Check)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Public auth endpoints
	app.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	app.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)

	// Session management
	authGroup := app.Group("/auth")
	authGroup.Post("/refresh", authHandler.RefreshToken)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", auth, authHandler.Me)
	authGroup.Post("/logout-all", auth, authHandler.LogoutAll)

	// Public loan application
	app.Post("/client/apply", middleware.StrictRateLimiter(), applicationHandler.Apply)

	// Client records (role decides visibility inside the handler)
	app.Get("/clients", auth, clientHandler.List)
	app.Post("/clients", auth, clientHandler.Create)

	// Employee-owned record access
	app.Get("/clients/:id/update", auth, middleware.EmployeeOnly(), clientHandler.GetForEmployee)
	app.Put("/clients/:id/update", auth, middleware.EmployeeOnly(), clientHandler.UpdateForEmployee)

	// Manager record access
	app.Get("/clients/:id/manager-update", auth, middleware.ManagerOnly(), clientHandler.GetForManager)
	app.Put("/clients/:id/manager-update", auth, middleware.ManagerOnly(), clientHandler.UpdateForManager)

	// Sensitive details (employees scoped to own clients, managers see all)
	app.Get("/clients/:id/details-update", auth, clientHandler.GetDetails)
	app.Put("/clients/:id/details-update", auth, clientHandler.UpdateDetails)

	// Approval workflow
	app.Post("/clients/:id/send-approval", auth, middleware.EmployeeOnly(), approvalHandler.SubmitForApproval)
	app.Put("/clients/:id/approve", auth, middleware.ManagerOnly(), approvalHandler.Approve)
	app.Put("/clients/:id/reject", auth, middleware.ManagerOnly(), approvalHandler.Reject)

	// Employee-scoped surface
	employeeGroup := app.Group("/employee", auth, middleware.EmployeeOnly())
	employeeGroup.Get("/clients", employeeHandler.ListClients)
	employeeGroup.Post("/clients", employeeHandler.CreateClient)
	employeeGroup.Put("/clients/:id", employeeHandler.UpdateClient)

	// Manager dashboard
	app.Get("/dashboard", auth, middleware.ManagerOnly(), dashboardHandler.GetDashboard)
}
