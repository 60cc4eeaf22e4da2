package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gatehouseauth/gatehouse/internal/auth/service"
	"github.com/gatehouseauth/gatehouse/internal/auth/store"
	"github.com/gatehouseauth/gatehouse/pkg/httpx"
	"github.com/gatehouseauth/gatehouse/pkg/slogx"

	_ "github.com/gatehouseauth/gatehouse/api/gatehouse" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	sessionVerify httpx.SessionFunc
	buildVersion  string
	startTime     time.Time
	logger        *slog.Logger

	store          store.Store
	SignUpService  *service.SignUpService
	SignInService  *service.SignInService
	ProfileService *service.ProfileService
}

func NewRouter(
	sessionVerify httpx.SessionFunc,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:           http.NewServeMux(),
		sessionVerify: sessionVerify,
		buildVersion:  buildVersion,
		startTime:     time.Now(),
		store:         st,
		logger:        logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerProfile()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Gatehouse Authentication Service API
//	@version		0.1.0
//	@description	Registration, sign-in and profile editing backed by an external identity provider.
//	@description
//	@description				Validation rules (password, username, collected fields) are driven by the
//	@description				flow config submitted with each request, so one deployment serves multiple apps.
//
//	@contact.name				Gatehouse Team
//	@contact.url				https://github.com/gatehouseauth/gatehouse
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Identity provider ID token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /auth/signup - strict rate limit by IP (public account creation)
	signUpHandler := &SignUpHandler{SignUpService: r.SignUpService}
	r.Mux.Handle("POST /v1/auth/signup",
		httpx.Chain(signUpHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /auth/signin - strict rate limit by IP (credential guessing surface)
	signInHandler := &SignInHandler{SignInService: r.SignInService}
	r.Mux.Handle("POST /v1/auth/signin",
		httpx.Chain(signInHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerProfile() {
	h := &EditProfileHandler{ProfileService: r.ProfileService}

	// PUT /profile - session required, moderate rate limit by user
	secured := httpx.Chain(h,
		httpx.SessionMiddleware(r.sessionVerify), // resolve Bearer ID token to a uid
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("PUT /v1/profile", secured)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
