package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Server is the gin router the go-kit handlers are registered on.
type Server struct {
	router *gin.Engine
}

func NewServer(debug bool) *Server {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if debug {
		router.Use(gin.Logger())
	}

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
		}
		c.Next()
	})

	// Unknown route
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
	})

	uptime := UptimeHandler{started: time.Now()}
	uptime.Register(router)

	return &Server{router: router}
}

// RegisterHandler mounts h on path for method.
func (s *Server) RegisterHandler(path, method string, h http.Handler) {
	s.router.Handle(method, path, gin.WrapH(h))
}

func (s *Server) Handler() http.Handler {
	return s.router
}
