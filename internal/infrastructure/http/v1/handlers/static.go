package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"inventrack/internal/core/apperror"
)

// StaticHandler serves the web UI. Unknown paths fall back to index.html so
// client-side routes survive a reload.
type StaticHandler struct {
	*BaseHandler
	root string
}

// NewStaticHandler serves files below root.
func NewStaticHandler(base *BaseHandler, root string) *StaticHandler {
	return &StaticHandler{BaseHandler: base, root: root}
}

// NoRoute is registered as the engine's fallback.
func (h *StaticHandler) NoRoute(c *gin.Context) {
	p := c.Request.URL.Path
	if h.root == "" || (c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) ||
		strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, "/health/") {
		h.Error(c, apperror.NewNotFound("route", p))
		return
	}

	// path.Clean on a rooted path cannot climb above "/".
	name := filepath.Join(h.root, filepath.FromSlash(path.Clean("/"+p)))
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		c.File(name)
		return
	}

	index := filepath.Join(h.root, "index.html")
	if _, err := os.Stat(index); err != nil {
		h.Error(c, apperror.NewNotFound("route", p))
		return
	}
	c.File(index)
}
