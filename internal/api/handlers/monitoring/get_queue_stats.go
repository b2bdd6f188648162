package monitoring

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lumberg/petitions/internal/api"
	"github.com/lumberg/petitions/internal/queue"
	"github.com/lumberg/petitions/internal/types"
	"github.com/lumberg/petitions/internal/util"
)

// GetQueueStatsRoute creates the route for queue depth inspection
func GetQueueStatsRoute(s *api.Server) *echo.Route {
	var inspector QueueInspector
	if s.RabbitMQClient != nil {
		inspector = s.RabbitMQClient
	}

	queueNames := make([]string, 0, 2)
	for _, pair := range queue.DefaultTransferPairs(s.Config.RabbitMQ) {
		queueNames = append(queueNames, pair.Queue)
	}

	handler := NewHandler(inspector, s.Store, queueNames)
	return s.Router.Management.GET("/queues", handler.GetQueueStats)
}

// GetQueueStats handles GET /-/queues requests
func (h *Handler) GetQueueStats(c echo.Context) error {
	ctx := c.Request().Context()
	log := util.LogFromContext(ctx)

	if h.inspector == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Queue client is disabled")
	}

	response := &types.QueueStatusResponse{
		Queues: make([]*types.QueueDepthResponse, 0, len(h.queueNames)),
	}

	for _, name := range h.queueNames {
		depth, err := h.inspector.Depth(name)
		if err != nil {
			log.Warn().Err(err).Str("queue", name).Msg("Failed to read queue depth")
			response.Queues = append(response.Queues, &types.QueueDepthResponse{
				Name:    name,
				Healthy: false,
			})
			continue
		}

		response.Queues = append(response.Queues, &types.QueueDepthResponse{
			Name:    name,
			Depth:   depth,
			Healthy: true,
		})
	}

	return c.JSON(http.StatusOK, response)
}
