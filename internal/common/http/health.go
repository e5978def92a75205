package http

import (
	"context"
	"net/http"

	"github.com/pkravets/huddle-auth/internal/common/constants"
	"github.com/pkravets/huddle-auth/internal/common/logger"
)

// Pinger is the slice of the connection pool the health check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthResponse struct {
	Server   string `json:"server"`
	Database string `json:"database"`
	Details  string `json:"details,omitempty"`
}

// HealthHandler reports process liveness plus a live database round trip. The
// server itself is always "ok" by the time this handler runs; only the
// database leg can degrade the response.
func HealthHandler(pinger Pinger, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), constants.HealthCheckTimeout)
		defer cancel()

		if err := pinger.Ping(ctx); err != nil {
			log.Errorf("health check: database ping failed: %v", err)
			WriteJSON(w, http.StatusInternalServerError, healthResponse{
				Server:   "ok",
				Database: "error",
				Details:  err.Error(),
			})
			return
		}

		WriteJSON(w, http.StatusOK, healthResponse{Server: "ok", Database: "ok"})
	}
}
