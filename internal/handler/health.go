package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health pings postgres and redis with a short deadline and reports per
// dependency. Degraded dependencies turn the endpoint 503 so load balancers
// rotate the instance out.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		checks := map[string]string{"db": "connected", "redis": "connected"}
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			checks["db"] = "error"
		}
		if rdb.Ping(ctx).Err() != nil {
			checks["redis"] = "error"
		}

		status := http.StatusOK
		for _, v := range checks {
			if v != "connected" {
				status = http.StatusServiceUnavailable
			}
		}
		c.JSON(status, gin.H{
			"ok":      status == http.StatusOK,
			"service": "fernledger",
			"db":      checks["db"],
			"redis":   checks["redis"],
		})
	}
}
