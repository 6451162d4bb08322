package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/projectblurimedia/Veggie-Tracker/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	accessTokenCookie = "access_token"
	authContextKey    = "auth"
)

// AuthContext is the identity established from a verified access token
type AuthContext struct {
	UserID    uuid.UUID
	Username  string
	IsAdmin   bool
	ExpiresAt time.Time
}

// SetTokenCookie stores the access token as an HttpOnly cookie.
// Cross-origin deployments (secure=true) need SameSite=None.
func SetTokenCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode
	}
	c.SetSameSite(sameSite)
	c.SetCookie(accessTokenCookie, token, int(ttl.Seconds()), "/", "", secure, true)
}

// ClearTokenCookie removes the access_token cookie
func ClearTokenCookie(c *gin.Context, secure bool) {
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode
	}
	c.SetSameSite(sameSite)
	c.SetCookie(accessTokenCookie, "", -1, "/", "", secure, true)
}

func tokenFromRequest(c *gin.Context) (string, error) {
	if token, err := c.Cookie(accessTokenCookie); err == nil && token != "" {
		return token, nil
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", errors.New("Authorization is missing")
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errors.New("Invalid authorization format. Expected 'Bearer <token>'")
	}
	return parts[1], nil
}

// ParseToken verifies an HS256 token and extracts its identity. Expired
// tokens are rejected.
func ParseToken(tokenString string, secret []byte) (AuthContext, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return AuthContext{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return AuthContext{}, errors.New("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return AuthContext{}, err
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return AuthContext{}, errors.New("invalid subject")
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return AuthContext{}, errors.New("missing expiry")
	}

	username, _ := claims["username"].(string)
	isAdmin, _ := claims["isAdmin"].(bool)
	return AuthContext{
		UserID:    userID,
		Username:  username,
		IsAdmin:   isAdmin,
		ExpiresAt: exp.Time,
	}, nil
}

// RequireAuth validates the access token from the cookie or the
// Authorization header and stores the AuthContext on the request.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := tokenFromRequest(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, err.Error()))
			return
		}

		auth, err := ParseToken(tokenString, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid or expired token"))
			return
		}

		c.Set(authContextKey, auth)
		c.Next()
	}
}

// GetAuthContext returns the identity set by RequireAuth
func GetAuthContext(c *gin.Context) (AuthContext, bool) {
	v, ok := c.Get(authContextKey)
	if !ok {
		return AuthContext{}, false
	}
	auth, ok := v.(AuthContext)
	return auth, ok
}
