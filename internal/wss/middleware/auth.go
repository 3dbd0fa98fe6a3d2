package middleware

import (
	"strings"

	"github.com/akhilrajvs/SquidEventWssService/internal/jwt"
	"github.com/akhilrajvs/SquidEventWssService/internal/wss/broadcasts"
	wsstypes "github.com/akhilrajvs/SquidEventWssService/internal/wss/types"
)

// AuthMiddleware handles session token authentication for WebSocket messages
type AuthMiddleware struct {
	jwtManager *jwt.JWTManager
}

func NewAuthMiddleware(jwtManager *jwt.JWTManager) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
	}
}

// Authenticate validates the token carried in a message payload and stores
// the claims on the context. Returns false after sending an auth error.
func (m *AuthMiddleware) Authenticate(ctx *wsstypes.WsContext) bool {
	var token string
	if tokenVal, exists := ctx.Payload["token"]; exists {
		if tokenStr, ok := tokenVal.(string); ok {
			token = tokenStr
		}
	}
	token = strings.TrimPrefix(token, "Bearer ")

	if token == "" {
		broadcasts.SendErrorWithType(ctx.Conn, wsstypes.AUTH_ERROR, "AUTHORIZATION_DENIED", "Authentication token required")
		return false
	}

	claims, err := m.jwtManager.ValidateToken(token)
	if err != nil {
		broadcasts.SendErrorWithType(ctx.Conn, wsstypes.AUTH_ERROR, "AUTHORIZATION_DENIED", "Invalid or expired token")
		return false
	}

	ctx.Claims = claims
	ctx.UserID = claims.UserID
	return true
}
