package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"showcase-server/internal/models"
)

// ContextKeyClaims is the gin context key the verified claims are stored
// under.
const ContextKeyClaims = "auth_claims"

// TokenVerifier validates a token string and returns its claims. Errors are
// models.ErrTokenInvalid, models.ErrTokenExpired, models.ErrTokenMalformed.
type TokenVerifier func(ctx context.Context, tokenString string) (*models.Claims, error)

// AuthMiddleware returns a gin middleware that verifies the bearer token and
// stores the claims in the request context.
func AuthMiddleware(verifier TokenVerifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.With(zap.String("path", c.Request.URL.Path))

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Missing token"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warn("Malformed Authorization header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Malformed token header"})
			return
		}

		claims, err := verifier(c.Request.Context(), parts[1])
		if err != nil {
			status := http.StatusUnauthorized
			msg := "Unauthorized: Invalid token"
			switch {
			case errors.Is(err, models.ErrTokenExpired):
				msg = "Unauthorized: Token expired"
			case errors.Is(err, models.ErrTokenMalformed), errors.Is(err, models.ErrTokenInvalid):
				// Same message for malformed and invalid tokens.
			default:
				log.Error("Unexpected token verification error", zap.Error(err))
				status = http.StatusInternalServerError
				msg = "Internal server error during token verification"
			}
			c.AbortWithStatusJSON(status, gin.H{"error": msg})
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// ClaimsFromContext extracts the claims stored by AuthMiddleware.
func ClaimsFromContext(c *gin.Context) (*models.Claims, bool) {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := val.(*models.Claims)
	return claims, ok
}

// GenerateTestJWT creates a signed token. Only for use in tests.
func GenerateTestJWT(userID uuid.UUID, secretKey string, validityDuration time.Duration) (string, error) {
	expirationTime := time.Now().Add(validityDuration)
	claims := &models.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign test JWT: %w", err)
	}
	return tokenString, nil
}
