package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/lumberg/petitions/internal/api"
	"github.com/lumberg/petitions/internal/api/handlers/monitoring"
	"github.com/lumberg/petitions/internal/api/handlers/signatures"
)

// AttachAllRoutes registers every route on the server's router.
func AttachAllRoutes(s *api.Server) {
	s.Router.Routes = []*echo.Route{
		signatures.GetSignaturesRoute(s),
		monitoring.GetQueueStatsRoute(s),
		monitoring.GetHealthyRoute(s),
	}

	s.AttachMetricsHandler()
}
