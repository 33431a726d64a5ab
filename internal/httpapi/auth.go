package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/slackpulse/internal/shared"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard registered claims plus the authenticated admin
// login.
type Claims struct {
	jwt.RegisteredClaims
	Login string
}

// GenerateToken signs a short-lived HS256 token for the given admin login.
func GenerateToken(login string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Login: login,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetLoginFromToken validates tokenString and returns the login it was
// issued for.
func GetLoginFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", shared.ErrorInvalidToken
	}

	return claims.Login, nil
}

// authMiddleware guards admin endpoints with a bearer token issued by the
// login handler.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			writeError(w, http.StatusUnauthorized, shared.ErrorInvalidAuthheaderFormat.Error())
			return
		}

		if _, err := GetLoginFromToken(parts[1], []byte(s.cfg.SecretKey)); err != nil {
			writeError(w, http.StatusUnauthorized, shared.ErrorInvalidToken.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}
