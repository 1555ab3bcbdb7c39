package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/fai-lds/lds-client/internal/api/handler"
	"github.com/fai-lds/lds-client/internal/api/metrics"
	"github.com/fai-lds/lds-client/internal/api/middleware"
	"github.com/fai-lds/lds-client/internal/core/domain"
	"github.com/fai-lds/lds-client/internal/core/ports"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Users    ports.UserService
	Sessions ports.SessionStore
	Redis    redis.UniversalClient
	Renderer echo.Renderer
	Cookie   handler.CookieConfig
	Log      zerolog.Logger

	// LoginRate and LoginBurst bound sign-in and sign-up attempts per IP.
	LoginRate  rate.Limit
	LoginBurst int
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = d.Renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// --- Health probes and metrics (no session required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – is the session store up?
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	// --- Pages ---
	accountHandler := handler.NewAccountHandler(d.Users, d.Sessions, d.Cookie, d.Log)
	userHandler := handler.NewUserHandler(d.Users, d.Log)
	limiter := middleware.NewIPRateLimiter(d.LoginRate, d.LoginBurst)

	pages := e.Group("", middleware.Session(d.Sessions, d.Cookie.Name, d.Log))
	pages.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/user/list")
	})

	account := pages.Group("/account")
	account.GET("/sign-in", accountHandler.SignInPage)
	account.POST("/sign-in", accountHandler.SignIn, limiter.Middleware)
	account.GET("/sign-up", accountHandler.SignUpPage)
	account.POST("/sign-up", accountHandler.SignUp, limiter.Middleware)
	account.POST("/sign-out", accountHandler.SignOut)

	users := pages.Group("/user", middleware.RequireSession)
	users.GET("/list", userHandler.List)
	users.GET("/detail/:id", userHandler.Detail)
	users.GET("/edit/:id", userHandler.Edit)
	users.POST("/update/:id", userHandler.Update)
	users.POST("/delete/:id", userHandler.Delete, middleware.RequireUserType(domain.UserTypeAdministrator))

	return e
}
