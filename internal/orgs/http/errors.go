package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/orgs/internal/orgs/service"
	"github.com/aussiebroadwan/orgs/pkg/httpx"
	"github.com/aussiebroadwan/orgs/pkg/orgsdk"
	"github.com/aussiebroadwan/orgs/pkg/slogx"
)

func writeError(w http.ResponseWriter, status int, code, desc string) {
	httpx.WriteJSON(w, status, orgsdk.ErrorResponse{
		Error:            code,
		ErrorDescription: desc,
	})
}

func writeBadRequest(w http.ResponseWriter, desc string) {
	writeError(w, http.StatusBadRequest, orgsdk.ErrorCodeInvalidRequest, desc)
}

// writeServiceError maps a service error kind onto a status code. Internal
// failures never leak their cause; the message is the fixed one the service
// attached.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		slogx.FromContext(r.Context()).Error("unexpected error", "err", err)
		writeError(w, http.StatusInternalServerError, orgsdk.ErrorCodeServerError, "Internal server error")
		return
	}

	switch svcErr.Kind {
	case service.KindNotFound:
		writeError(w, http.StatusNotFound, orgsdk.ErrorCodeNotFound, svcErr.Message)
	case service.KindConflict:
		writeError(w, http.StatusConflict, orgsdk.ErrorCodeConflict, svcErr.Message)
	case service.KindClient, service.KindInvalidRequest:
		writeBadRequest(w, svcErr.Message)
	default:
		writeError(w, http.StatusInternalServerError, orgsdk.ErrorCodeServerError, svcErr.Message)
	}
}
