package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpiry reads the exp claim without verifying the signature. Opaque
// tokens report ok=false.
func tokenExpiry(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if strings.Count(raw, ".") != 2 {
		return time.Time{}, false
	}
	token, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
