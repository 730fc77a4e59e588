package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/ribgsilva/note-sync/business/v1/account"
	"github.com/ribgsilva/note-sync/platform/web/handler"
	"github.com/ribgsilva/note-sync/sys"
)

type sessionClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// IssueToken signs a session token for userID, valid for the configured TTL.
func IssueToken(userID string) (string, error) {
	now := time.Now().UTC()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sys.Configs.Auth.TokenTTL)),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(sys.Configs.Auth.TokenSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Session validates the bearer token and puts the session into the request
// context, where the business layer reads it from.
func Session() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		bearer := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(bearer, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, handler.Error{Message: "missing bearer token"})
			return
		}
		raw := strings.TrimPrefix(bearer, "Bearer ")

		var claims sessionClaims
		_, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
			return []byte(sys.Configs.Auth.TokenSecret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || claims.UserID == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, handler.Error{Message: "invalid session token"})
			return
		}

		rctx := account.WithSession(ctx.Request.Context(), account.Session{UserID: claims.UserID})
		ctx.Request = ctx.Request.WithContext(rctx)
		ctx.Next()
	}
}
