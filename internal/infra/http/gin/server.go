// Package ginserver wires the application services into an HTTP API.
// Every route handler binds the request, runs a capability check where
// one applies and delegates to a service; responses share a single
// envelope.
package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"stayhub/internal/infra/config"
	"stayhub/internal/infra/obs"
)

type AuthHTTP interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Logout(c *gin.Context)
	Me(c *gin.Context)
	UpdateMe(c *gin.Context)
	DeleteMe(c *gin.Context)
}

type PlaceHTTP interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	GetPhoto(c *gin.Context)
	ListMine(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	UploadPhoto(c *gin.Context)
	RemovePhoto(c *gin.Context)
}

type BookingHTTP interface {
	Create(c *gin.Context)
	ListMine(c *gin.Context)
	Cancel(c *gin.Context)
}

type ReviewHTTP interface {
	Create(c *gin.Context)
	ListForPlace(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type AdminHTTP interface {
	ListUsers(c *gin.Context)
	Approve(c *gin.Context)
	Block(c *gin.Context)
	Unblock(c *gin.Context)
}

type ChatHTTP interface {
	Start(c *gin.Context)
	ListMine(c *gin.Context)
	Get(c *gin.Context)
	Send(c *gin.Context)
}

type Handlers struct {
	Auth           AuthHTTP
	Place          PlaceHTTP
	Booking        BookingHTTP
	Review         ReviewHTTP
	Admin          AdminHTTP
	Chat           ChatHTTP
	AuthMiddleware gin.HandlerFunc
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(corsConfig(cfg)))
	if h.AuthMiddleware != nil {
		router.Use(h.AuthMiddleware)
	}

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Auth != nil {
		api.POST("/auth/register", h.Auth.Register)
		api.POST("/auth/login", h.Auth.Login)
		api.POST("/auth/logout", h.Auth.Logout)
		api.GET("/auth/me", h.Auth.Me)
		api.PATCH("/auth/me", h.Auth.UpdateMe)
		api.DELETE("/auth/me", h.Auth.DeleteMe)
	}
	if h.Place != nil {
		api.GET("/places/:id", h.Place.Get)
		api.GET("/photos/:id", h.Place.GetPhoto)
		hostGroup := api.Group("/host/places")
		hostGroup.GET("", h.Place.ListMine)
		hostGroup.POST("", h.Place.Create)
		hostGroup.PUT("/:id", h.Place.Update)
		hostGroup.DELETE("/:id", h.Place.Delete)
		hostGroup.POST("/:id/photos", h.Place.UploadPhoto)
		hostGroup.DELETE("/:id/photos/:photoID", h.Place.RemovePhoto)
	}
	if h.Booking != nil {
		api.POST("/bookings", h.Booking.Create)
		api.GET("/me/bookings", h.Booking.ListMine)
		api.DELETE("/bookings/:id", h.Booking.Cancel)
	}
	if h.Review != nil {
		api.GET("/places/:id/reviews", h.Review.ListForPlace)
		api.POST("/places/:id/reviews", h.Review.Create)
		api.PATCH("/reviews/:id", h.Review.Update)
		api.DELETE("/reviews/:id", h.Review.Delete)
	}
	if h.Admin != nil {
		adminGroup := api.Group("/admin")
		adminGroup.GET("/users", h.Admin.ListUsers)
		adminGroup.POST("/users/:id/approve", h.Admin.Approve)
		adminGroup.POST("/users/:id/block", h.Admin.Block)
		adminGroup.POST("/users/:id/unblock", h.Admin.Unblock)
	}
	if h.Chat != nil {
		api.POST("/conversations", h.Chat.Start)
		api.GET("/conversations", h.Chat.ListMine)
		api.GET("/conversations/:id", h.Chat.Get)
		api.POST("/conversations/:id/messages", h.Chat.Send)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func corsConfig(cfg config.Config) cors.Config {
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
