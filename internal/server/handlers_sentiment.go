package server

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/AlessandroLop/evaluacion-api/internal/domain"
	apperrors "github.com/AlessandroLop/evaluacion-api/internal/errors"
	"github.com/AlessandroLop/evaluacion-api/internal/sentiment"
)

type analyzeSentimentsRequest struct {
	Texts []string `json:"texts"`
}

func (s *Server) handleAnalyzeSentiments(c echo.Context) error {
	key := clientKey(c)

	result := s.limiter.Allow(key)
	c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	c.Response().Header().Set("X-RateLimit-Reset", result.Reset.UTC().Format(time.RFC3339))
	if !result.Allowed {
		return apperrors.RateLimitedError(
			"sentiment request limit reached, try again later",
			result.RetryAfterSeconds)
	}

	var req analyzeSentimentsRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if len(req.Texts) == 0 {
		return apperrors.ValidationError("texts must contain at least one entry")
	}
	if len(req.Texts) > sentiment.MaxTexts {
		return apperrors.ValidationError("too many texts in a single request").
			WithField("max", sentiment.MaxTexts).
			WithField("received", len(req.Texts))
	}
	for i, text := range req.Texts {
		if strings.TrimSpace(text) == "" {
			return apperrors.ValidationError("texts must not be empty").WithField("position", i)
		}
	}

	results, cached, err := s.sentiment.Analyze(c.Request().Context(), req.Texts)
	if err != nil {
		return translateProviderError(err)
	}

	return respond(c, http.StatusOK, map[string]any{
		"results": results,
		"cached":  cached,
	}, "Sentiment analysis completed")
}

// translateProviderError maps gateway failures to client-facing errors.
// Authentication problems stay opaque: they are a server misconfiguration,
// not something the caller can fix.
func translateProviderError(err error) error {
	var rateLimited *domain.ProviderRateLimitError
	if errors.As(err, &rateLimited) {
		return apperrors.RateLimitedError("sentiment provider is throttling requests", rateLimited.RetryAfterSeconds)
	}

	switch {
	case errors.Is(err, domain.ErrProviderTimeout):
		return apperrors.TimeoutError("sentiment provider timed out", err)
	case errors.Is(err, domain.ErrProviderAuth):
		return apperrors.InternalError("sentiment analysis failed", err)
	case errors.Is(err, domain.ErrProviderUnavailable):
		return apperrors.UnavailableError("sentiment provider is unavailable", err)
	case errors.Is(err, domain.ErrProviderConnection):
		return apperrors.BadGatewayError("could not reach sentiment provider", err)
	default:
		return apperrors.BadGatewayError("sentiment provider request failed", err)
	}
}

// clientKey identifies the caller for rate limiting: RealIP, then the
// first X-Forwarded-For hop, then the bare remote address.
func clientKey(c echo.Context) string {
	if ip := c.RealIP(); ip != "" {
		return ip
	}
	if fwd := c.Request().Header.Get(echo.HeaderXForwardedFor); fwd != "" {
		if first, _, ok := strings.Cut(fwd, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(fwd)
	}
	if host, _, err := net.SplitHostPort(c.Request().RemoteAddr); err == nil && host != "" {
		return host
	}
	return "unknown"
}
