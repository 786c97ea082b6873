package session

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt"
)

// Claims are the fields the front end reads out of the login token.
type Claims struct {
	Role   string
	Name   string
	UserID string
}

// DecodeClaims reads the payload segment of a JWT without verifying its
// signature. The result is only used for display; the backend verifies tokens.
func DecodeClaims(token string) (Claims, error) {
	mc := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, mc); err != nil {
		return Claims{}, fmt.Errorf("decode token claims: %w", err)
	}

	c := Claims{
		Role: stringClaim(mc, "role"),
		Name: stringClaim(mc, "name"),
	}
	for _, k := range []string{"id", "userId", "user_id"} {
		if v := stringClaim(mc, k); v != "" {
			c.UserID = v
			break
		}
	}
	return c, nil
}

func stringClaim(mc jwt.MapClaims, key string) string {
	switch v := mc[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
