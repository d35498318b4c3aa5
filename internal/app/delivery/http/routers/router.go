package routers

import (
	"fmt"
	"time"

	"mindhub-service/internal/app/config"
	middlewaresPkg "mindhub-service/internal/app/delivery/http/middlewares"
	"mindhub-service/internal/app/services/core/assessments"
	"mindhub-service/internal/app/services/core/instruments"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewaresPkg.Middlewares,
	instrumentController *instruments.InstrumentController,
	assessmentController *assessments.AssessmentController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.RequestID)
	router.Use(middlewares.Logging(middlewares.Log))
	router.Use(middlewares.ErrorHandler)

	// Mutations get a tighter per-IP budget than reads; abusive clients are
	// blocked for a minute instead of being throttled request by request.
	writeLimiter := middlewaresPkg.NewRateLimiter(internalConfig.App.MaxRequests, time.Second, time.Minute)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/instruments", func(r chi.Router) {
				attachInstrumentRoutes(r, writeLimiter, instrumentController)
			})

			r.Route("/assessments", func(r chi.Router) {
				attachAssessmentRoutes(r, writeLimiter, assessmentController)
			})
		})
	})
}
