// Package bootstrap assembles the HTTP router and runs the server.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/flightbooking/api"
	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/service/admin"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/Domenick1991/flightbooking/internal/service/users"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Deps carries everything the router needs. All services are injected as
// interfaces so tests can swap in fakes.
type Deps struct {
	Users    users.UserUseCase
	Flights  flights.FlightUseCase
	Bookings booking.BookingUseCase
	Stats    admin.StatsUseCase
	Tokens   api.TokenVerifier
}

// NewRouter wires the public, session-gated and admin-gated route groups.
func NewRouter(cfg *config.Config, deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	root := router.Group("/api")

	api.NewAuthHandler(deps.Users).Register(root.Group("/auth"))
	api.NewFlightHandler(deps.Flights).Register(root.Group("/flights"))

	authed := root.Group("/bookings", api.AuthRequired(deps.Tokens))
	api.NewBookingHandler(deps.Bookings).Register(authed)

	adminGroup := root.Group("/admin", api.AuthRequired(deps.Tokens), api.AdminRequired())
	api.NewAdminHandler(deps.Flights, deps.Bookings, deps.Stats).Register(adminGroup)

	if cfg != nil && cfg.HTTP.SwaggerDoc != "" {
		router.StaticFile("/swagger/doc.json", cfg.HTTP.SwaggerDoc)
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))))
	}

	return router
}

// Run serves the router and blocks until the context is cancelled or the
// server fails; cancellation triggers a graceful shutdown.
func Run(ctx context.Context, cfg *config.Config, router *gin.Engine) error {
	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}
