package api

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"fitsync/training-service/internal/config"
	"fitsync/training-service/internal/domain"
	"fitsync/training-service/internal/events"
	"fitsync/training-service/internal/logger"
	"fitsync/training-service/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// Constants for context keys
const (
	ContextUserIDKey        = "userID"
	ContextUserRoleKey      = "userRole"
	ContextCallerKey        = "caller"
	ContextCorrelationIDKey = "correlationID"
)

// jwtClaims is the access token payload issued by the user service.
type jwtClaims struct {
	UserID string      `json:"id"`
	Role   domain.Role `json:"role"`
	Email  string      `json:"email,omitempty"`
	jwt.RegisteredClaims
}

var errMissingClaims = errors.New("token is missing id or role")

// AuthMiddleware verifies the bearer token (HS256, issuer and audience) and
// stores the caller in the context.
func AuthMiddleware(cfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "No token provided")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := parseToken(tokenString, cfg)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		caller := domain.Caller{ID: claims.UserID, Role: claims.Role, Token: tokenString}
		c.Set(ContextCallerKey, caller)
		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUserRoleKey, claims.Role)
		c.Next()
	}
}

func parseToken(tokenString string, cfg config.JWTConfig) (*jwtClaims, error) {
	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == "" || claims.Role == "" {
		return nil, errMissingClaims
	}
	if cfg.Issuer != "" && !claims.VerifyIssuer(cfg.Issuer, true) {
		return nil, jwt.ErrTokenInvalidIssuer
	}
	if cfg.Audience != "" && !claims.VerifyAudience(cfg.Audience, true) {
		return nil, jwt.ErrTokenInvalidAudience
	}
	return claims, nil
}

// RoleMiddleware creates middleware to check if user has the required role(s).
// Must run AFTER AuthMiddleware.
func RoleMiddleware(allowedRoles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerFromContext(c)
		if !ok {
			abortWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}
		if !slices.Contains(allowedRoles, caller.Role) {
			abortWithError(c, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
			return
		}
		c.Next()
	}
}

// CorrelationMiddleware propagates X-Correlation-ID into the request context
// and echoes it on the response, generating one when absent.
func CorrelationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(events.CorrelationHeader)
		if id == "" {
			id = events.NewCorrelationID()
		}
		c.Set(ContextCorrelationIDKey, id)
		c.Header(events.CorrelationHeader, id)
		c.Request = c.Request.WithContext(events.WithCorrelationID(c.Request.Context(), id))
		c.Next()
	}
}

// RequestLogger logs every request once it has been served.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info(fmt.Sprintf("%s %s", c.Request.Method, c.Request.URL.Path),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"correlation_id", c.GetString(ContextCorrelationIDKey),
			"user_id", c.GetString(ContextUserIDKey),
		)
	}
}

// MetricsMiddleware records request count and latency per route template.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start).Seconds())
	}
}

func callerFromContext(c *gin.Context) (domain.Caller, bool) {
	raw, exists := c.Get(ContextCallerKey)
	if !exists {
		return domain.Caller{}, false
	}
	caller, ok := raw.(domain.Caller)
	return caller, ok
}

// mustCaller returns the authenticated caller. Only valid behind AuthMiddleware.
func mustCaller(c *gin.Context) domain.Caller {
	caller, _ := callerFromContext(c)
	return caller
}
