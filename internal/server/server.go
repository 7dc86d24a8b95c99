// Package server assembles the HTTP surface: global middleware, every
// resource module, static uploads, health and the live admin feed.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"brightline/internal/config"
	"brightline/internal/middleware"
	"brightline/internal/modules/auth"
	"brightline/internal/modules/blog"
	"brightline/internal/modules/booking"
	"brightline/internal/modules/contact"
	"brightline/internal/modules/quote"
	"brightline/internal/modules/services"
	"brightline/internal/modules/upload"
	"brightline/internal/modules/user"
	"brightline/internal/notification"
	"brightline/internal/pkg/jwt"
	"brightline/internal/pkg/response"
	fileupload "brightline/internal/pkg/upload"
	"brightline/internal/realtime"
	"brightline/internal/repository"
	"brightline/internal/storage"
)

// Notifier is satisfied by *notification.Dispatcher.
type Notifier interface {
	Notify(ctx context.Context, msg notification.Message)
}

type Deps struct {
	Config    *config.Config
	DB        *gorm.DB
	Tokens    *jwt.Service
	Store     storage.Backend
	Uploads   *fileupload.Router
	Notifier  Notifier
	Hub       *realtime.Hub
	RateStore middleware.RateStore
}

type Module interface {
	RegisterRoutes(api *gin.RouterGroup, guards middleware.Guards)
}

// NewRouter wires repositories, services and handlers onto a fresh engine.
func NewRouter(d Deps) *gin.Engine {
	cfg := d.Config
	started := time.Now()

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.ErrorLogger(),
		middleware.CORS(cfg.App.FrontendURL, cfg.App.CORSOrigins),
	)

	if local, ok := d.Store.(*storage.Local); ok {
		r.Static("/uploads", local.Dir())
	}

	api := r.Group("/api")
	api.GET("/health", health(d.DB, cfg.App.Env, started))

	accounts := repository.NewUserRepository(d.DB)
	api.GET("/ws/admin", realtime.NewHandler(d.Hub, middleware.NewAuthenticator(d.Tokens, accounts), allowedOrigins(cfg)).AdminFeed)

	limited := api.Group("", middleware.RateLimit(d.RateStore, cfg.RateLimit.Max, cfg.RateLimit.Window))
	guards := middleware.NewGuards(d.Tokens, accounts)
	for _, m := range modules(d) {
		m.RegisterRoutes(limited, guards)
	}

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route "+c.Request.Method+" "+c.Request.URL.Path+" not found")
	})
	return r
}

func modules(d Deps) []Module {
	cfg := d.Config

	users := repository.NewUserRepository(d.DB)
	offerings := repository.NewServiceRepository(d.DB)
	bookings := repository.NewBookingRepository(d.DB)
	quotes := repository.NewQuoteRepository(d.DB)
	contacts := repository.NewContactRepository(d.DB)
	blogs := repository.NewBlogRepository(d.DB)

	admin := cfg.App.AdminEmail
	return []Module{
		auth.NewHandler(auth.NewService(users, d.Tokens, d.Notifier, cfg.App.FrontendURL)),
		blog.NewHandler(blog.NewService(blogs)),
		services.NewHandler(services.NewService(offerings)),
		booking.NewHandler(booking.NewService(bookings, offerings, users, d.Notifier, d.Hub, admin)),
		quote.NewHandler(quote.NewService(quotes, offerings, users, d.Notifier, d.Hub, admin)),
		contact.NewHandler(contact.NewService(contacts, users, d.Notifier, d.Hub, admin)),
		user.NewHandler(user.NewService(users, bookings, quotes)),
		upload.NewHandler(upload.NewService(users, d.Uploads), d.Uploads),
	}
}

func allowedOrigins(cfg *config.Config) []string {
	if !cfg.IsProduction() {
		return nil
	}
	return []string{cfg.App.FrontendURL}
}

func health(db *gorm.DB, env string, started time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, dbStatus, code := "OK", "connected", http.StatusOK
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status, dbStatus, code = "DEGRADED", "disconnected", http.StatusServiceUnavailable
		}
		data := gin.H{
			"status":      status,
			"environment": env,
			"database":    dbStatus,
			"uptime":      time.Since(started).Round(time.Second).Seconds(),
		}
		if code != http.StatusOK {
			response.Error(c, "Service degraded", code, data)
			return
		}
		response.Success(c, data, "Server is running")
	}
}
