// Package router wires every HTTP route onto a gin engine.
package router

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"fitness_backend/internal/api"
	authhandler "fitness_backend/internal/feature/auth/transport/handler"
	bodymetricshandler "fitness_backend/internal/feature/bodymetrics/transport/handler"
	nutritionhandler "fitness_backend/internal/feature/nutrition/transport/handler"
	"fitness_backend/internal/platform/http/handler"
	"fitness_backend/internal/platform/http/middleware"
	jwtmw "fitness_backend/internal/platform/jwt"
	"fitness_backend/internal/platform/telemetry"
	"fitness_backend/internal/shared/ratelimiter"
)

// Deps are the handlers and collaborators the router mounts.
type Deps struct {
	Tokens      jwtmw.TokenValidator
	AuthLimiter ratelimiter.RateLimiterInterface
	CORSOrigins []string
	// WebDir holds the built dashboard (index.html + assets). Empty disables page serving.
	WebDir string

	Health      *handler.HealthHandler
	Auth        *authhandler.AuthHandler
	BodyMetrics *bodymetricshandler.BodyMetricsHandler
	Nutrition   *nutritionhandler.NutritionHandler
	Goals       *nutritionhandler.GoalsHandler
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(telemetry.ServiceName))
	r.Use(middleware.RequestID(), middleware.RequestLogger())
	r.Use(middleware.CORS(d.CORSOrigins))

	// 認証不要
	// 導通確認用
	r.GET("/healthz", d.Health.Liveness)
	r.HEAD("/healthz", d.Health.Liveness)
	r.GET("/readyz", d.Health.Readiness)

	// OAuth (per-IP rate limit)
	oauth := r.Group("/auth")
	oauth.Use(middleware.RateLimit(d.AuthLimiter))
	{
		oauth.GET("/google", d.Auth.GoogleSignIn)
		oauth.GET("/google/callback", d.Auth.GoogleCallback)
		oauth.POST("/refresh", d.Auth.Refresh)
		oauth.POST("/logout", d.Auth.Logout)
	}

	// 認証必須のAPI
	// → ハンドラーより前に401を返すため、永続化層には到達しない
	apiGroup := r.Group("/api")
	apiGroup.Use(jwtmw.AuthRequired(d.Tokens))
	{
		apiGroup.GET("/me", d.Auth.Me)

		apiGroup.GET("/body-metrics", d.BodyMetrics.List)
		apiGroup.POST("/body-metrics", d.BodyMetrics.Create)
		apiGroup.DELETE("/body-metrics/:id", d.BodyMetrics.Delete)

		apiGroup.GET("/nutrition", d.Nutrition.List)
		apiGroup.POST("/nutrition", d.Nutrition.Create)
		apiGroup.GET("/nutrition/progress", d.Nutrition.Progress)
		apiGroup.GET("/nutrition/goals", d.Goals.Get)
		apiGroup.POST("/nutrition/goals", d.Goals.Upsert)
		apiGroup.DELETE("/nutrition/:id", d.Nutrition.Delete)
	}

	// ダッシュボードのページ（RouteGateでリダイレクト制御）
	pages := r.Group("/")
	pages.Use(jwtmw.RouteGate(d.Tokens))
	{
		page := pageHandler(d.WebDir)
		pages.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, jwtmw.DashboardPath) })
		pages.GET(jwtmw.DashboardPath, page)
		pages.GET(jwtmw.DashboardPath+"/*path", page)
		pages.GET(jwtmw.SignInPath, page)
	}
	if d.WebDir != "" {
		r.Static("/assets", filepath.Join(d.WebDir, "assets"))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Not found"})
	})
	return r
}

// pageHandler serves the single-page dashboard shell.
func pageHandler(webDir string) gin.HandlerFunc {
	index := filepath.Join(webDir, "index.html")
	return func(c *gin.Context) {
		if webDir == "" {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Dashboard UI not configured"})
			return
		}
		c.Header("Cache-Control", "no-store")
		c.File(index)
	}
}
