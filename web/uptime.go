package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type UptimeHandler struct {
	f       Formatter
	started time.Time
}

func (h *UptimeHandler) Register(r *gin.Engine) {
	r.GET("/ping", h.f.Wrap(h.Ping))
}

func (h *UptimeHandler) Ping(c *gin.Context) (interface{}, int, error) {
	return map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	}, http.StatusOK, nil
}
