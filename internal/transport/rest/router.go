package rest

import (
	"net/http"
	"os"

	"auditdesk/internal/cache"
	"auditdesk/internal/model"
	"auditdesk/internal/service"
	"auditdesk/internal/transport/rest/handler"
	"auditdesk/internal/transport/rest/middleware"
	"auditdesk/internal/transport/ws"

	"github.com/gorilla/mux"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService     *service.AuthService
	FormService     *service.FormService
	AuditService    *service.AuditService
	ATAService      *service.ATAService
	RebuttalService *service.RebuttalService
	Scoreboard      cache.ScoreboardCache
	WSHub           *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	formHandler := handler.NewFormHandler(c.FormService)
	reportHandler := handler.NewReportHandler(c.AuditService)
	ataHandler := handler.NewATAHandler(c.ATAService)
	rebuttalHandler := handler.NewRebuttalHandler(c.RebuttalService)
	scoreboardHandler := handler.NewScoreboardHandler(c.Scoreboard)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket route (token in query param)
	v1.HandleFunc("/ws/dashboard", wsHandler.DashboardWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Form management (management only)
	formRoutes := v1.NewRoute().Subrouter()
	formRoutes.Use(authMW.RequireRole(model.RoleManagement))

	formRoutes.HandleFunc("/forms", formHandler.Create).Methods("POST", "OPTIONS")
	formRoutes.HandleFunc("/forms", formHandler.List).Methods("GET", "OPTIONS")
	formRoutes.HandleFunc("/forms/{name}", formHandler.Get).Methods("GET", "OPTIONS")
	formRoutes.HandleFunc("/forms/{name}", formHandler.Update).Methods("PUT", "OPTIONS")
	formRoutes.HandleFunc("/forms/{name}", formHandler.Delete).Methods("DELETE", "OPTIONS")

	// Scoreboards (management only)
	formRoutes.HandleFunc("/scoreboard/agents", scoreboardHandler.Agents).Methods("GET", "OPTIONS")
	formRoutes.HandleFunc("/scoreboard/auditors", scoreboardHandler.Auditors).Methods("GET", "OPTIONS")

	// Audit submission (auditors)
	auditRoutes := v1.NewRoute().Subrouter()
	auditRoutes.Use(authMW.RequireRole(model.RoleAuditor, model.RoleMasterAuditor))

	auditRoutes.HandleFunc("/reports", reportHandler.Submit).Methods("POST", "OPTIONS")
	auditRoutes.HandleFunc("/reports/preview", reportHandler.Preview).Methods("POST", "OPTIONS")

	// ATA review (master auditors)
	ataRoutes := v1.NewRoute().Subrouter()
	ataRoutes.Use(authMW.RequireRole(model.RoleMasterAuditor))

	ataRoutes.HandleFunc("/reports/{id}/ata", ataHandler.Review).Methods("POST", "OPTIONS")

	// Workflow actions (partner and management; the transition table
	// enforces per-action roles)
	rebuttalRoutes := v1.NewRoute().Subrouter()
	rebuttalRoutes.Use(authMW.RequireRole(model.RolePartner, model.RoleManagement))

	rebuttalRoutes.HandleFunc("/reports/{id}/rebuttal", rebuttalHandler.Act).Methods("POST", "OPTIONS")

	// Reads available to any authenticated user
	readRoutes := v1.NewRoute().Subrouter()
	readRoutes.Use(authMW.RequireAuth)

	readRoutes.HandleFunc("/reports", reportHandler.List).Methods("GET", "OPTIONS")
	readRoutes.HandleFunc("/reports/{id}", reportHandler.Get).Methods("GET", "OPTIONS")
	readRoutes.HandleFunc("/reports/{id}/ata", ataHandler.Get).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
