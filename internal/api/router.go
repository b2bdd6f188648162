package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/lumberg/petitions/internal/util"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// InitRouter builds the echo instance, middleware stack and route groups.
func (s *Server) InitRouter() {
	s.Echo = echo.New()
	s.Echo.Debug = false
	s.Echo.HideBanner = true

	if s.Config.Echo.EnableRecoverMiddleware {
		s.Echo.Use(middleware.Recover())
	}
	s.Echo.Use(middleware.RequestID())
	s.Echo.Use(requestLoggerMiddleware())

	s.Router = &Router{
		Root:            s.Echo.Group(""),
		Management:      s.Echo.Group("/-"),
		APIV1Signatures: s.Echo.Group("/api/v1/signatures", apiKeyAuthMiddleware(s.Config.Auth.APIKeys)),
	}
}

// requestLoggerMiddleware attaches a request-scoped zerolog logger carrying
// the request id and logs request completion.
func requestLoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			logger := log.With().
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Logger()

			c.SetRequest(req.WithContext(util.WithLogger(req.Context(), logger)))

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			logger.Info().
				Int("status", c.Response().Status).
				Msg("Request handled")

			return err
		}
	}
}

// apiKeyAuthMiddleware guards a group with a static API key, accepted via
// the X-Api-Key header or the api_key query parameter. An empty key list
// disables authentication (development mode).
func apiKeyAuthMiddleware(keys []string) echo.MiddlewareFunc {
	keySet := make(map[string]bool, len(keys))
	for _, k := range keys {
		keySet[k] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if len(keySet) == 0 {
				return next(c)
			}

			key := c.Request().Header.Get("X-Api-Key")
			if key == "" {
				key = c.QueryParam("api_key")
			}

			if !keySet[key] {
				return echo.NewHTTPError(http.StatusForbidden, "Invalid or missing API key")
			}

			return next(c)
		}
	}
}

// AttachMetricsHandler exposes the Prometheus registry on the management
// group.
func (s *Server) AttachMetricsHandler() {
	s.Router.Management.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
