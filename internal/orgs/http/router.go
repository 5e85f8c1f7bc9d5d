package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/orgs/internal/orgs/mail"
	"github.com/aussiebroadwan/orgs/internal/orgs/service"
	"github.com/aussiebroadwan/orgs/internal/orgs/store"
	"github.com/aussiebroadwan/orgs/pkg/httpx"
	"github.com/aussiebroadwan/orgs/pkg/jwtx"
	"github.com/aussiebroadwan/orgs/pkg/slogx"

	_ "github.com/aussiebroadwan/orgs/api/orgs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store               store.Store
	queue               mail.Queue
	IdentityService     *service.IdentityService
	OrganizationService *service.OrganizationService
	InviteService       *service.InviteService
	SearchService       *service.SearchService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	queue mail.Queue,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		queue:        queue,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerOrganizations()
	r.registerInvites()
	r.registerSearch()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			AussieBroadWAN Organization Service API
//	@version		0.1.0
//	@description	Organization membership management: organizations, members, invite links, email invitations and member search.
//	@description
//	@description				Every endpoint except the health checks expects an access token issued by the auth service.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/orgs
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8081
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authed wraps h with token verification, caller provisioning and a per-user
// rate limit.
func (r *Router) authed(h http.Handler, limit httpx.RateLimitConfig, extra ...httpx.Middleware) http.Handler {
	mws := []httpx.Middleware{httpx.AuthnMiddleware(r.verifier)}
	if r.IdentityService != nil {
		mws = append(mws, ProvisionUser(r.IdentityService))
	}
	mws = append(mws, extra...)
	mws = append(mws, httpx.RateLimitByUser(limit))
	return httpx.Chain(h, mws...)
}

func (r *Router) registerOrganizations() {
	h := &OrganizationsHandler{OrganizationService: r.OrganizationService}
	member := RequireMember(r.OrganizationService)

	// Caller-scoped endpoints
	r.Mux.Handle("POST /v1/organizations",
		r.authed(http.HandlerFunc(h.HandleCreate), httpx.ModerateLimit),
	)
	r.Mux.Handle("GET /v1/organizations",
		r.authed(http.HandlerFunc(h.HandleList), httpx.LenientLimit),
	)

	// Organization-scoped endpoints require a membership edge
	r.Mux.Handle("GET /v1/organizations/{org_id}",
		r.authed(http.HandlerFunc(h.HandleGet), httpx.LenientLimit, member),
	)
	r.Mux.Handle("PATCH /v1/organizations/{org_id}",
		r.authed(http.HandlerFunc(h.HandleUpdate), httpx.ModerateLimit, member),
	)
	r.Mux.Handle("GET /v1/organizations/{org_id}/members",
		r.authed(http.HandlerFunc(h.HandleMembers), httpx.LenientLimit, member),
	)
	r.Mux.Handle("DELETE /v1/organizations/{org_id}/users/{user_id}",
		r.authed(http.HandlerFunc(h.HandleRemoveUser), httpx.ModerateLimit, member),
	)
}

func (r *Router) registerInvites() {
	h := &InvitesHandler{InviteService: r.InviteService}
	member := RequireMember(r.OrganizationService)

	r.Mux.Handle("GET /v1/organizations/{org_id}/invite",
		r.authed(http.HandlerFunc(h.HandleLink), httpx.ModerateLimit, member),
	)

	// Bulk send fans out to the mail queue, keep it tight
	r.Mux.Handle("POST /v1/organizations/{org_id}/send-invite",
		r.authed(http.HandlerFunc(h.HandleSend), httpx.StrictLimit, member),
	)

	// Strict limit by user to slow token guessing
	r.Mux.Handle("POST /v1/organizations/accept-invite",
		r.authed(http.HandlerFunc(h.HandleAccept), httpx.StrictLimit),
	)
}

func (r *Router) registerSearch() {
	h := &SearchHandler{SearchService: r.SearchService}

	// Cross-organization search is an admin read
	r.Mux.Handle("GET /v1/members/search",
		r.authed(h, httpx.ModerateLimit, httpx.RequireAnyScope("admin:read")),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys, r.queue),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
