package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/orgs/pkg/httpx"
	"github.com/aussiebroadwan/orgs/pkg/orgsdk"
)

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness check returning uptime and version. Always 200 while the process runs
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	orgsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, orgsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}
