package app

import (
	"onlyfounders-backend/internal/audit"
	"onlyfounders-backend/internal/auth"
	"onlyfounders-backend/internal/clusters"
	"onlyfounders-backend/internal/colleges"
	"onlyfounders-backend/internal/config"
	"onlyfounders-backend/internal/constants"
	"onlyfounders-backend/internal/database"
	"onlyfounders-backend/internal/gatepass"
	"onlyfounders-backend/internal/health"
	"onlyfounders-backend/internal/middleware"
	"onlyfounders-backend/internal/participants"
	"onlyfounders-backend/internal/portfolio"
	"onlyfounders-backend/internal/teams"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route registration.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	// CORS (before session)
	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	// Session (Redis)
	sessionHandler, rdb, err := middleware.Session(middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	})
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)

	// Request counters (after session)
	app.Use(middleware.HealthMarker(rdb))

	// Tracing + route logger
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var errDB error
		db, errDB = database.Open(cfg.DatabaseURL)
		if errDB != nil {
			return nil, nil, nil, errDB
		}
	}

	// Health (no auth)
	healthHandlers := &health.Handlers{
		Rdb:            rdb,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			healthHandlers.DB = sqlDB
		}
	}
	app.Get("/health/json", healthHandlers.JSON)
	app.Get("/health/reset", healthHandlers.Reset)

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}

	// Auth (no auth middleware)
	var finder auth.ParticipantFinder
	if db != nil {
		finder = &auth.GormParticipantFinder{DB: db}
	}
	authHandlers := &auth.Handlers{Finder: finder, Rdb: rdb, Config: sessionCfg}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/login", authHandlers.Login)
	authGroup.Get("/me", authHandlers.Me)
	authGroup.Delete("/logout", authHandlers.Logout)

	if db != nil && rdb != nil {
		// Participants: registration is public, the rest requires auth
		participantService := &participants.Service{DB: db}
		participantHandlers := &participants.Handlers{Service: participantService, Rdb: rdb, Config: sessionCfg}
		app.Post("/api/v1/participants/register", participantHandlers.Register)
		participantGroup := app.Group("/api/v1/participants", middleware.RequireAuth())
		participantGroup.Get("/me", participantHandlers.Me)
		participantGroup.Patch("/me", participantHandlers.Update)
		participantGroup.Post("/onboarding", participantHandlers.CompleteOnboarding)
		participantGroup.Get("/roster/:college_id", middleware.AuthorizePermission(constants.ViewRoster), participantHandlers.Roster)

		// Teams
		teamService := &teams.Service{DB: db}
		teamHandlers := &teams.Handlers{Service: teamService}
		teamGroup := app.Group("/api/v1/teams", middleware.RequireAuth())
		teamGroup.Post("/create-team", teamHandlers.Create)
		teamGroup.Post("/join-team", teamHandlers.Join)
		teamGroup.Post("/leave-team", teamHandlers.Leave)
		teamGroup.Get("/view-team/:team_id", teamHandlers.Get)
		teamGroup.Patch("/rename-team/:team_id", teamHandlers.Rename)

		// Clusters (admin tier)
		clusterService := &clusters.Service{DB: db}
		clusterHandlers := &clusters.Handlers{Service: clusterService}
		clusterGroup := app.Group("/api/v1/clusters", middleware.RequireAuth())
		clusterGroup.Get("/get-all-clusters", clusterHandlers.List)
		clusterGroup.Get("/:cluster_id/leaderboard", clusterHandlers.Leaderboard)
		clusterGroup.Post("/create-cluster", middleware.AuthorizePermission(constants.ManageClusters), clusterHandlers.Create)
		clusterGroup.Post("/:cluster_id/assign-team", middleware.AuthorizePermission(constants.ManageClusters), clusterHandlers.AssignTeam)
		clusterGroup.Post("/:cluster_id/advance-stage", middleware.AuthorizePermission(constants.ManageClusters), clusterHandlers.AdvanceStage)
		clusterGroup.Patch("/:cluster_id/bidding", middleware.AuthorizePermission(constants.ManageClusters), clusterHandlers.SetBidding)

		// Portfolio (investment market)
		portfolioService := &portfolio.Service{DB: db}
		portfolioHandlers := &portfolio.Handlers{Service: portfolioService}
		portfolioGroup := app.Group("/api/v1/portfolio", middleware.RequireAuth())
		portfolioGroup.Post("/commit", portfolioHandlers.Commit)
		portfolioGroup.Get("/view", portfolioHandlers.View)

		// Gate pass
		gateService := &gatepass.Service{DB: db, Signer: gatepass.NewHMACSigner(cfg.GateTokenSecret)}
		gateHandlers := &gatepass.Handlers{Service: gateService}
		gateGroup := app.Group("/api/v1/gatepass", middleware.RequireAuth())
		gateGroup.Post("/issue", gateHandlers.Issue)
		gateGroup.Get("/mine", gateHandlers.Mine)
		gateGroup.Post("/revoke", gateHandlers.Revoke)
		gateGroup.Post("/verify", middleware.AuthorizePermission(constants.VerifyGatePass), gateHandlers.Verify)

		// Colleges
		collegeService := &colleges.Service{DB: db}
		collegeHandlers := &colleges.Handlers{Service: collegeService}
		collegeGroup := app.Group("/api/v1/colleges", middleware.RequireAuth())
		collegeGroup.Get("/get-all-colleges", collegeHandlers.List)
		collegeGroup.Get("/view-college/:college_id", collegeHandlers.Get)
		collegeGroup.Post("/create-college", middleware.AuthorizePermission(constants.ManageColleges), collegeHandlers.Create)

		// Audit feed (admin)
		auditService := &audit.Service{DB: db}
		auditHandlers := &audit.Handlers{Service: auditService}
		app.Get("/api/v1/audit/events", middleware.RequireAuth(), middleware.AuthorizePermission(constants.ViewAudit), auditHandlers.List)
	}

	return app, db, rdb, nil
}
