package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/orgs/internal/orgs/store"
	"github.com/aussiebroadwan/orgs/pkg/httpx"
	"github.com/aussiebroadwan/orgs/pkg/jwtx"
	"github.com/aussiebroadwan/orgs/pkg/orgsdk"
)

// Pinger is implemented by queues backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness check covering the database, verification keys and mail queue
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	orgsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	orgsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	keys *jwtx.KeySet,
	queue any,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"database": "ok",
			"keys":     "ok",
			"queue":    "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		fail := func(name, msg string) {
			checks[name] = "error: " + msg
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if err := st.Ping(r.Context()); err != nil {
			fail("database", err.Error())
		}

		if !keys.IsReady() {
			fail("keys", "no keys loaded")
		}

		// In-memory queues have nothing to ping.
		if p, ok := queue.(Pinger); ok {
			if err := p.Ping(r.Context()); err != nil {
				fail("queue", err.Error())
			}
		}

		httpx.WriteJSON(w, statusCode, orgsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
