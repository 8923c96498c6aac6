// Package httpapi ichki kuzatuv endpointlari (/health, /stats).
package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// FirmCounter bazadagi firmalar soni
type FirmCounter interface {
	Count(ctx context.Context) (int, error)
}

// SessionCounter tugallanmagan suhbatlar soni
type SessionCounter interface {
	ActiveSessions() int
}

// NewRouter gin router. sessions nil bo'lishi mumkin (bot ishlamayotgan holat).
func NewRouter(firms FirmCounter, sessions SessionCounter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	r.GET("/stats", func(c *gin.Context) {
		n, err := firms.Count(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "firmalar sonini o'qib bo'lmadi"})
			return
		}
		active := 0
		if sessions != nil {
			active = sessions.ActiveSessions()
		}
		c.JSON(http.StatusOK, gin.H{"firms": n, "active_sessions": active})
	})

	return r
}

// NewServer addr bo'yicha http.Server
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:    addr,
		Handler: handler,
	}
}
