package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/store-scheduler/internal/httperr"
	"github.com/BruksfildServices01/store-scheduler/internal/models"
)

const (
	ContextUserID       = "userID"
	ContextEmail        = "email"
	ContextIsStoreOwner = "isStoreOwner"
)

// Claims is the JWT payload issued at login.
type Claims struct {
	UserID       uint   `json:"userId"`
	Email        string `json:"email"`
	IsStoreOwner bool   `json:"isStoreOwner"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token for u that expires after ttl.
func IssueToken(secret string, ttl time.Duration, u models.User, now time.Time) (string, error) {
	claims := Claims{
		UserID:       u.ID,
		Email:        u.Email,
		IsStoreOwner: u.IsStoreOwner,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func parseToken(secret, raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, errors.New("invalid token payload")
	}
	return claims, nil
}

var (
	errMissingHeader = httperr.ErrUnauthorized("missing_authorization_header", "No token provided")
	errBadHeader     = httperr.ErrUnauthorized("invalid_authorization_header", "Authorization header must be Bearer <token>")
	errInvalidToken  = httperr.ErrUnauthorized("invalid_token", "Invalid token")
)

func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Respond(c, errMissingHeader)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Respond(c, errBadHeader)
			return
		}

		claims, err := parseToken(secret, strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Respond(c, errInvalidToken)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextIsStoreOwner, claims.IsStoreOwner)

		c.Next()
	}
}

// RequireStoreOwner rejects callers whose token lacks the store owner role.
func RequireStoreOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ContextIsStoreOwner) {
			httperr.Forbidden(c, "store_owner_required", "Access denied")
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated caller's id, or 0.
func UserID(c *gin.Context) uint {
	return c.GetUint(ContextUserID)
}
