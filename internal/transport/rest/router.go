package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/employee-directory/internal/auth"
	"github.com/frahmantamala/employee-directory/internal/employee"
	"github.com/frahmantamala/employee-directory/internal/transport/middleware"
	"github.com/frahmantamala/employee-directory/internal/transport/swagger"
	"github.com/go-chi/chi"
)

// RegisterAllRoutes wires middleware, liveness endpoints, login and the
// guarded employee-record routes onto the router.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, employeeHandler *employee.Handler, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Liveness, no auth.
	router.Get("/", healthHandler.rootHandler)
	router.Get("/health", healthHandler.healthCheckHandler)

	// OpenAPI contract and the Swagger UI over it.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)

		r.Route("/employees", func(er chi.Router) {
			er.Use(authHandler.AuthMiddleware)

			er.Post("/", employeeHandler.CreateEmployee)
			er.Get("/", employeeHandler.ListEmployees)
			er.Get("/{id}/", employeeHandler.GetEmployee)
			er.Put("/{id}/", employeeHandler.UpdateEmployee)
			er.Delete("/{id}/", employeeHandler.DeleteEmployee)
		})
	})
}
