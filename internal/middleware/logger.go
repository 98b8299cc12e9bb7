package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

var skipPaths = map[string]bool{
	"/health": true,
}

// Logger writes one line per request: method, path, status, latency and the
// authenticated uid when present.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if skipPaths[path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)
		uid := c.GetString("uid")

		statusColor := colorGreen
		switch {
		case status >= 500:
			statusColor = colorRed
		case status >= 400:
			statusColor = colorYellow
		case status >= 300:
			statusColor = colorCyan
		}

		if uid != "" {
			log.Printf("%s %s %s%d%s %s uid=%s",
				c.Request.Method, path, statusColor, status, colorReset, latency, uid)
		} else {
			log.Printf("%s %s %s%d%s %s",
				c.Request.Method, path, statusColor, status, colorReset, latency)
		}
	}
}
