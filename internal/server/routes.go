package server

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "github.com/AlessandroLop/evaluacion-api/internal/errors"
	"github.com/AlessandroLop/evaluacion-api/internal/platform/correlation"
)

func (s *Server) registerRoutes() {
	s.echo.Use(correlationMiddleware)
	s.echo.Use(requestLogger())
	// The error middleware must wrap Recover so a recovered panic is
	// rendered as the standard envelope, not Echo's default 500 body.
	s.echo.Use(apperrors.Middleware(s.config.AppEnv != "production"))
	s.echo.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableErrorHandler: true,
	}))
	s.echo.Use(middleware.CORS())
	s.echo.Use(middleware.Secure())
	s.echo.Use(newRateLimiter(s.config.APIRatePerSecond, s.config.APIRateBurst))

	// Observability endpoints
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/version", s.handleVersion)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	s.echo.GET("/", s.handleRoot)

	// Catalog
	s.echo.GET("/instructors", s.handleListInstructors)
	s.echo.GET("/instructors/:id/courses", s.handleInstructorCourses)
	s.echo.GET("/questions", s.handleListQuestions)

	// Evaluations
	s.echo.POST("/evaluations", s.handleCreateEvaluation)
	s.echo.GET("/courses/:id/comments", s.handleCourseComments)

	// Statistics
	s.echo.GET("/statistics", s.handleStatistics)
	s.echo.GET("/statistics/seminars", s.handleSeminarStatistics)

	// Sentiment pass-through (only when a provider is configured)
	if s.sentiment != nil {
		s.echo.POST("/sentiments", s.handleAnalyzeSentiments)
	}
}

// correlationMiddleware honors an inbound X-Request-ID, minting one
// otherwise, and threads it through the request context for logging.
func correlationMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Request().Header.Get(echo.HeaderXRequestID)
		if id == "" {
			id = correlation.NewID()
		}
		c.Response().Header().Set(echo.HeaderXRequestID, id)

		ctx := correlation.WithID(c.Request().Context(), id)
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
				slog.ErrorContext(c.Request().Context(), "Request failed", attrs...)
				return nil
			}
			slog.InfoContext(c.Request().Context(), "Request handled", attrs...)
			return nil
		},
	})
}
