package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MS0C54073/CarWashApp-sub001/internal/admin"
	"github.com/MS0C54073/CarWashApp-sub001/internal/api"
	"github.com/MS0C54073/CarWashApp-sub001/internal/auth"
	"github.com/MS0C54073/CarWashApp-sub001/internal/booking"
	"github.com/MS0C54073/CarWashApp-sub001/internal/payment"
	"github.com/MS0C54073/CarWashApp-sub001/internal/service"
	"github.com/MS0C54073/CarWashApp-sub001/internal/track"
	"github.com/MS0C54073/CarWashApp-sub001/internal/user"
	"github.com/MS0C54073/CarWashApp-sub001/internal/vehicle"
	"github.com/MS0C54073/CarWashApp-sub001/pkg/config"
)

type Dependencies struct {
	Cfg config.Config
	DB  *pgxpool.Pool
}

func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	usersRepo := user.NewRepository(deps.DB)
	authHandlers := auth.Handlers{Cfg: deps.Cfg, Users: usersRepo}
	vehicleHandlers := vehicle.Handlers{Repo: vehicle.NewRepository(deps.DB)}
	serviceRepo := service.NewRepository(deps.DB)
	serviceHandlers := service.Handlers{Repo: serviceRepo}
	bookingHandlers := booking.Handlers{
		DB:       deps.DB,
		Bookings: booking.NewRepository(deps.DB),
		Vehicles: vehicle.NewRepository(deps.DB),
		Services: serviceRepo,
		Users:    usersRepo,
		TrackTTL: deps.Cfg.TrackTokenTTL,
	}
	paymentHandlers := payment.Handlers{DB: deps.DB, Repo: payment.NewRepository(deps.DB)}
	adminHandlers := admin.Handlers{DB: deps.DB, Users: usersRepo}
	trackHandlers := track.Handlers{DB: deps.DB}

	sessionAuth := api.SessionAuth(deps.Cfg, usersRepo)

	// v1
	r.Route("/v1", func(r chi.Router) {
		// Public auth surface
		r.Post("/auth/register", authHandlers.Register)
		r.Post("/auth/login", authHandlers.Login)

		// Authenticated portals
		r.Group(func(r chi.Router) {
			r.Use(sessionAuth)

			// Shared profile surface
			r.Get("/me", authHandlers.Me)
			r.Put("/me", authHandlers.UpdateProfile)

			// Client portal
			r.Group(func(r chi.Router) {
				r.Use(api.RequireRole(user.RoleClient))
				r.Post("/vehicles", vehicleHandlers.Create)
				r.Get("/vehicles", vehicleHandlers.List)
				r.Post("/bookings", bookingHandlers.Create)
			})

			// Client-facing catalog (any authenticated role may browse)
			r.Get("/carwashes/{carWashID}/services", serviceHandlers.ListByCarWash)

			// Carwash portal
			r.Group(func(r chi.Router) {
				r.Use(api.RequireRole(user.RoleCarwash))
				r.Post("/services", serviceHandlers.Create)
				r.Get("/services", serviceHandlers.ListMine)
				r.Put("/services/{id}", serviceHandlers.Update)
				r.Post("/services/{id}/activate", serviceHandlers.Activate)
				r.Post("/services/{id}/deactivate", serviceHandlers.Deactivate)
			})

			// Booking surface, role-scoped inside the handlers
			r.Get("/bookings", bookingHandlers.List)
			r.Get("/bookings/{id}", bookingHandlers.Get)
			r.Get("/bookings/{id}/events", bookingHandlers.Events)
			r.Put("/bookings/{id}/status", bookingHandlers.UpdateStatus)
			r.Post("/bookings/{id}/cancel", bookingHandlers.Cancel)
			r.Post("/bookings/{id}/payment", paymentHandlers.Create)
			r.Get("/bookings/{id}/payment", paymentHandlers.GetForBooking)

			// Admin portal
			r.Route("/admin", func(r chi.Router) {
				r.Use(api.RequireRole(user.RoleAdmin, user.RoleSubadmin))

				r.Get("/users", adminHandlers.ListUsers)
				r.Post("/users", adminHandlers.CreateUser)
				r.Put("/users/{id}/approval", adminHandlers.DecideApproval)
				r.Put("/users/{id}/suspend", adminHandlers.SetSuspended)
				r.Put("/users/{id}/active", adminHandlers.SetActive)

				r.Put("/bookings/{id}/assign-driver", bookingHandlers.AssignDriver)
				r.Put("/payments/{id}/status", paymentHandlers.SetStatus)

				// Full-admin-only escape hatch and audit trail
				r.Group(func(r chi.Router) {
					r.Use(api.RequireRole(user.RoleAdmin))
					r.Post("/bookings/{id}/override-status", bookingHandlers.OverrideStatus)
					r.Get("/audit-logs", adminHandlers.AuditLog)
				})
			})
		})

		// Public tracking links, used by a separate frontend domain.
		// Only allow CORS for explicitly configured origins.
		r.Route("/track", func(r chi.Router) {
			r.Use(api.CORSMiddleware(api.CORSOptions{
				AllowedOrigins: deps.Cfg.TrackAllowedOrigins,
				AllowedMethods: []string{"GET", "OPTIONS"},
				AllowedHeaders: []string{"Content-Type"},
				MaxAgeSeconds:  600,
			}))

			r.Get("/{token}", trackHandlers.View)
			r.Get("/{token}/events", trackHandlers.Events)
		})
	})

	return r
}
