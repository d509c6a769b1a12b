package menu

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// errUnavailable is all a visitor sees when generation fails; the cause is
// only logged.
const errUnavailable = "the menu is not available right now, please try again later"

// Provider is what the handlers need from the pipeline.
type Provider interface {
	Menu(ctx context.Context) (Menu, error)
}

type Handler struct {
	menus  Provider
	logger *zap.Logger
}

func NewHandler(menus Provider, logger *zap.Logger) *Handler {
	return &Handler{menus: menus, logger: logger}
}

// load treats a failed cache write as a warning: the menu is still usable.
func (h *Handler) load(c *gin.Context) (Menu, error) {
	m, err := h.menus.Menu(c.Request.Context())

	var cwErr *CacheWriteError
	if errors.As(err, &cwErr) {
		h.logger.Warn("serving uncached menu", zap.Error(err))
		return m, nil
	}

	return m, err
}

// --------------------------------------------------
// GET /
// --------------------------------------------------
func (h *Handler) Page(c *gin.Context) {
	m, err := h.load(c)
	if err != nil {
		h.logger.Error("menu generation failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"error": errUnavailable,
		})
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"sections": m.Sections(),
	})
}

// --------------------------------------------------
// GET /api/menu
// --------------------------------------------------
func (h *Handler) JSON(c *gin.Context) {
	m, err := h.load(c)
	if err != nil {
		h.logger.Error("menu generation failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errUnavailable})
		return
	}

	c.JSON(http.StatusOK, gin.H{"menu": m})
}
