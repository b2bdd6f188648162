package monitoring

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lumberg/petitions/internal/api"
	"github.com/lumberg/petitions/internal/queue"
	"github.com/lumberg/petitions/internal/util"
)

// GetHealthyRoute creates the liveness probe route
func GetHealthyRoute(s *api.Server) *echo.Route {
	var inspector QueueInspector
	if s.RabbitMQClient != nil {
		inspector = s.RabbitMQClient
	}

	queueNames := make([]string, 0, 2)
	for _, pair := range queue.DefaultTransferPairs(s.Config.RabbitMQ) {
		queueNames = append(queueNames, pair.Queue)
	}

	handler := NewHandler(inspector, s.Store, queueNames)
	return s.Router.Management.GET("/healthy", handler.GetHealthy)
}

// GetHealthy handles GET /-/healthy requests. The probe fails when the
// database is unreachable; a degraded queue connection is reported but does
// not fail the probe since the read API stays serviceable.
func (h *Handler) GetHealthy(c echo.Context) error {
	ctx := c.Request().Context()
	log := util.LogFromContext(ctx)

	if err := h.pinger.Ping(ctx); err != nil {
		log.Error().Err(err).Msg("Database ping failed")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Database unreachable")
	}

	status := map[string]interface{}{
		"database": "ok",
	}

	switch {
	case h.inspector == nil:
		status["queue"] = "disabled"
	case h.inspector.IsHealthy():
		status["queue"] = "ok"
	default:
		status["queue"] = "degraded"
	}

	return c.JSON(http.StatusOK, status)
}
