package http

import (
	"database/sql"
	"net/http"

	"github.com/ecolink-tn/ecolink-api/internal/auth"
	"github.com/ecolink-tn/ecolink-api/internal/messaging"
	"github.com/ecolink-tn/ecolink-api/internal/onboarding"
	"github.com/ecolink-tn/ecolink-api/internal/organization"
	"github.com/ecolink-tn/ecolink-api/internal/problem"
	"github.com/ecolink-tn/ecolink-api/internal/telemetry"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

// SetupRouter initializes all routes for the application
func SetupRouter(db *sql.DB, publisher messaging.PublisherInterface, verifier *auth.Verifier, perms auth.Permissions, metrics *telemetry.Metrics) *mux.Router {
	var authMetrics auth.MetricsRecorder
	var permMetrics auth.PermissionMetricsRecorder
	if metrics != nil {
		authMetrics = metrics
		permMetrics = metrics
	}
	authenticated := auth.MiddlewareWithMetrics(verifier, authMetrics)
	requirePermission := func(per string) func(http.Handler) http.Handler {
		return auth.RequirePermissionWithMetrics(per, perms, permMetrics)
	}

	// Initialize problem components
	problemRepo := problem.NewRepository(db, publisher)
	problemService := problem.NewService(problemRepo)
	problemHandler := problem.NewHandler(problemService)

	// Initialize organization components
	orgRepo := organization.NewRepository(db, publisher)
	orgService := organization.NewService(orgRepo)
	orgHandler := organization.NewHandler(orgService)

	// Initialize onboarding components
	sessions := onboarding.NewSessionStore()
	preferences := onboarding.NewPreferencesRepository(db, publisher)
	onboardingHandler := onboarding.NewHandler(sessions, preferences)

	r := mux.NewRouter()
	r.Use(otelmux.Middleware("ecolink-api"))

	// Public health endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"ecolink-api"}`))
	}).Methods("GET")

	// Problem routes: reading is public, reporting requires an account
	r.HandleFunc("/problems", problemHandler.ListProblems).Methods("GET")
	r.HandleFunc("/problems/markers", problemHandler.ListMarkers).Methods("GET")
	r.HandleFunc("/problems/{id}", problemHandler.GetProblem).Methods("GET")

	r.Handle("/problems",
		authenticated(
			requirePermission("problem:create")(
				http.HandlerFunc(problemHandler.ReportProblem),
			),
		),
	).Methods("POST")

	r.Handle("/problems/refresh",
		authenticated(http.HandlerFunc(problemHandler.Refresh)),
	).Methods("POST")

	// Organization routes: the directory is public, registration requires an account
	r.HandleFunc("/organizations", orgHandler.Directory).Methods("GET")
	r.HandleFunc("/organizations/{id}", orgHandler.GetOrganization).Methods("GET")
	r.HandleFunc("/organizations/{id}/services", orgHandler.ListServices).Methods("GET")

	r.Handle("/organizations",
		authenticated(
			requirePermission("organization:create")(
				http.HandlerFunc(orgHandler.RegisterOrganization),
			),
		),
	).Methods("POST")

	r.Handle("/organizations/refresh",
		authenticated(http.HandlerFunc(orgHandler.Refresh)),
	).Methods("POST")

	r.Handle("/organizations/{id}/services",
		authenticated(
			requirePermission("service:create")(
				http.HandlerFunc(orgHandler.AddService),
			),
		),
	).Methods("POST")

	// Onboarding routes: session state is per authenticated user
	r.Handle("/onboarding",
		authenticated(http.HandlerFunc(onboardingHandler.GetState)),
	).Methods("GET")

	r.Handle("/onboarding/advance",
		authenticated(http.HandlerFunc(onboardingHandler.Advance)),
	).Methods("POST")

	r.Handle("/onboarding/back",
		authenticated(http.HandlerFunc(onboardingHandler.Back)),
	).Methods("POST")

	r.Handle("/onboarding/complete",
		authenticated(http.HandlerFunc(onboardingHandler.Finish)),
	).Methods("POST")

	return r
}
