// Package httpapi wires the HTTP transport (Gin) to the template services,
// middleware and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, redacted access logs, panic recovery, metrics,
// compression, CORS, security headers, idempotency and rate limiting.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/tbourn/moreply-backend/docs"
	"github.com/tbourn/moreply-backend/internal/config"
	"github.com/tbourn/moreply-backend/internal/http/handlers"
	"github.com/tbourn/moreply-backend/internal/http/middleware"
	"github.com/tbourn/moreply-backend/internal/services"
)

// maxBodyBytes caps request bodies. Templates are short texts.
const maxBodyBytes = 1 << 20

// Deps are the application services exposed over HTTP.
type Deps struct {
	Store    *services.TemplateStore
	Edit     *services.EditOverlay
	Composer *services.Composer
}

// RegisterRoutes attaches middleware and endpoints to r and mounts the API
// under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry
//  2. RequestID
//  3. RedactingLogger (attaches the request logger)
//  4. Recovery
//  5. Body size limit
//  6. Metrics
//  7. Gzip
//  8. Idempotency validator (before the limiter so replays bypass it)
//  9. Rate limiter
//  10. CORS and security headers
func RegisterRoutes(r *gin.Engine, deps Deps, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{"X-API-Key"},
	}))
	r.Use(middleware.Recovery())
	r.Use(limitBody(maxBodyBytes))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{
			MaxLen: 200,
			// Only template creation stores keys.
			ReplayRoutes: []string{http.MethodPost + " " + routePath(cfg.APIBasePath, "/templates")},
		},
		func(_ context.Context, key string) (bool, error) {
			return deps.Store.HasIdempotencyKey(key), nil
		},
	))

	// Reads are served from an in-memory snapshot, so only writes are limited.
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIP())
	rl.WritesOnly = true
	r.Use(rl.Handler())

	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins)...)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		EnablePolicy: true,
	}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "loaded": deps.Store.Loaded(), "version": deps.Store.Version()})
	})
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := handlers.New(deps.Store, deps.Edit, deps.Composer)

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Templates
		api.GET("/templates", h.ListTemplates)
		api.POST("/templates", h.CreateTemplate)
		api.GET("/templates/export", h.ExportTemplates)
		api.GET("/templates/:id", h.GetTemplate)
		api.DELETE("/templates/:id", h.DeleteTemplate)

		// Inline edit
		api.GET("/edit", h.GetEditState)
		api.POST("/templates/:id/edit", h.BeginEdit)
		api.PATCH("/templates/:id/edit", h.UpdateDraft)
		api.DELETE("/templates/:id/edit", h.CancelEdit)
		api.POST("/templates/:id/edit/save", h.SaveEdit)

		// Composer
		api.GET("/composer", h.GetComposer)
		api.PUT("/composer", h.PutComposer)
		api.POST("/composer/generate", h.GenerateReply)
		api.POST("/composer/save", h.SaveComposer)

		// Stateless reply synthesis
		api.POST("/replies", h.SynthesizeReply)
	}
}

// corsMiddleware allows every origin when origins is empty and otherwise
// echoes allow-listed origins.
func corsMiddleware(origins []string) []gin.HandlerFunc {
	base := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "If-None-Match",
			middleware.HeaderIdempotencyKey,
		},
		ExposeHeaders: []string{
			"X-Request-ID", "ETag", "Location", "Content-Disposition", "Idempotency-Replayed",
		},
		MaxAge: 12 * time.Hour,
	}

	if len(origins) == 0 {
		base.AllowAllOrigins = true
		// gin-contrib/cors skips requests without Origin; health probes and
		// curl still get the header.
		return []gin.HandlerFunc{
			func(c *gin.Context) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Next()
			},
			cors.New(base),
		}
	}

	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	base.AllowOrigins = origins
	return []gin.HandlerFunc{
		func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		},
		cors.New(base),
	}
}

// limitBody caps the request body at maxBytes; reads past it fail and the
// JSON binders answer 400.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
// routePath is the full gin route pattern of rel mounted under prefix.
func routePath(prefix, rel string) string {
	if prefix == "" || prefix == "/" {
		return rel
	}
	return prefix + rel
}

func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
