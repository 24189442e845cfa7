package config

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// slowRequestThreshold flags handlers worth looking at; sweeps and invoice
// builds should stay well under it.
const slowRequestThreshold = 250 * time.Millisecond

func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		log.Printf("[http] %s %s | %d | %v",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), latency)

		if latency > slowRequestThreshold {
			log.Printf("[http] slow request: %s %s took %v",
				c.Request.Method, c.Request.URL.Path, latency)
		}
	}
}
