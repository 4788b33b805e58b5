package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arnavshah/shift-roster-go/pkg/auth"
	"github.com/arnavshah/shift-roster-go/pkg/database"
)

const (
	requestIDKey    = "request_id"
	requestIDMaxLen = 64
	apiKeyKey       = "apiKey"
	userIDKey       = "userID"
	usernameKey     = "username"
)

// RequestID reads X-Request-ID or generates a UUID, and echoes it back
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.New().String()
		}
		c.Set(requestIDKey, rid)
		c.Header("X-Request-ID", rid)
		c.Next()
	}
}

// RequestLogger logs every request with zap once it completes
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString(requestIDKey)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.ByType(gin.ErrorTypePrivate).String()))
		}

		switch {
		case status >= 500:
			logger.Error("request failed", fields...)
		case status >= 400:
			logger.Warn("client error", fields...)
		default:
			logger.Info("request completed", fields...)
		}
	}
}

func bearer(c *gin.Context) string {
	return strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
}

// AuthMiddleware verifies the JWT token for admin routes
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearer(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		claims, err := h.Auth.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(usernameKey, claims.Username)
		c.Next()
	}
}

// APIKeyMiddleware verifies the API key for scheduler routes using HMAC
func (h *Handler) APIKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := bearer(c)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API Key required"})
			return
		}

		userID, err := h.Auth.VerifyHMACKey(key)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API Key signature"})
			return
		}

		// Fetch or create API key record to track usage
		var apiKey database.APIKey
		err = h.DB.Where(database.APIKey{Key: key}).Attrs(database.APIKey{
			KeyPreview: auth.KeyPreview(key),
			Name:       userID,
			RateLimit:  h.rateLimit(0),
		}).FirstOrCreate(&apiKey).Error
		if err != nil {
			h.Logger.Error("load api key failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not load API key"})
			return
		}
		if apiKey.Revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API Key revoked"})
			return
		}
		if err := h.DB.Model(&apiKey).Update("last_used", h.clock()).Error; err != nil {
			h.Logger.Warn("update last_used failed", zap.Uint("key_id", apiKey.ID), zap.Error(err))
		}

		c.Set(apiKeyKey, &apiKey)
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// RateLimitMiddleware enforces each key's daily request limit. Counters live
// in redis when configured, otherwise in the api_usage table.
func (h *Handler) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey, ok := currentKey(c)
		if !ok {
			c.Next()
			return
		}
		limit := h.rateLimit(apiKey.RateLimit)
		now := h.clock()

		if h.Cache != nil {
			key := fmt.Sprintf("ratelimit:%d:%s", apiKey.ID, now.Format(database.UsageDate))
			count, err := h.Cache.IncrWithTTL(c.Request.Context(), key, 25*time.Hour)
			if err == nil {
				if count > int64(limit) {
					tooMany(c, limit)
					return
				}
				c.Next()
				return
			}
			h.Logger.Warn("redis rate limit unavailable, using database", zap.Error(err))
		}

		used, err := database.RequestsOn(h.DB, apiKey.ID, now)
		if err != nil {
			h.Logger.Warn("usage lookup failed, allowing request", zap.Error(err))
			c.Next()
			return
		}
		if used >= limit {
			tooMany(c, limit)
			return
		}
		c.Next()
	}
}

func tooMany(c *gin.Context, limit int) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"error":      "Daily rate limit exceeded",
		"rate_limit": limit,
	})
}

func currentKey(c *gin.Context) (*database.APIKey, bool) {
	raw, exists := c.Get(apiKeyKey)
	if !exists {
		return nil, false
	}
	apiKey, ok := raw.(*database.APIKey)
	return apiKey, ok
}
