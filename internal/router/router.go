package router

import (
	"net/http"
	"time"

	"menugen/internal/menu"
	"menugen/internal/middleware"
	"menugen/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Options struct {
	StaticDir   string
	CORSOrigins []string
}

func NewRouter(handler *menu.Handler, opts Options, logger *zap.Logger) (*gin.Engine, error) {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(logger),
	)

	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: opts.CORSOrigins,
			AllowMethods: []string{"GET"},
			AllowHeaders: []string{"Origin", "Content-Type"},
			MaxAge:       12 * time.Hour,
		}))
	}

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.Static("/static", opts.StaticDir)

	r.GET("/", handler.Page)
	r.GET("/api/menu", handler.JSON)

	return r, nil
}
