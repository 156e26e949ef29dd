package common

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Authorization interface {
	IdentityFromHeader(h http.Header) (*Identity, error)
}

type sessionClaims struct {
	UserID string `json:"user_id"`
	OrgID  string `json:"org_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type jwtAuthorization struct {
	secret []byte
}

// IdentityFromHeader implements Authorization.
func (a *jwtAuthorization) IdentityFromHeader(h http.Header) (*Identity, error) {
	raw := strings.TrimPrefix(h.Get("Authorization"), "Bearer ")
	if raw == "" {
		return nil, jwt.ErrTokenMalformed
	}

	claims := sessionClaims{}
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, err
	}
	orgID, err := uuid.Parse(claims.OrgID)
	if err != nil {
		return nil, err
	}

	return &Identity{
		UserID: userID,
		OrgID:  orgID,
		Role:   Role(claims.Role),
	}, nil
}

func NewAuthorization(secret string) Authorization {
	return &jwtAuthorization{
		secret: []byte(secret),
	}
}

// AuthMiddleware binds the caller identity onto the request context.
func AuthMiddleware(auth Authorization) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := auth.IdentityFromHeader(c.Request.Header)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or missing credentials",
			})
			return
		}

		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}
