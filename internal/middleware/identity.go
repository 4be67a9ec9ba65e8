package middleware

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// currentUserID resolves the identity used for rate-limit bucketing
// and cache keys.  It prefers the "user_id" value JWTAuth stored in
// the context, falls back to the raw token claims, and answers "anon"
// for the unauthenticated availability endpoints.  The numeric subject
// claim arrives as a float64 after JSON decoding, hence fmt.Sprint.
func currentUserID(c echo.Context) string {
	if v := c.Get("user_id"); v != nil {
		if s := fmt.Sprint(v); s != "" && s != "<nil>" {
			return s
		}
	}
	if tok, ok := c.Get("user").(*jwt.Token); ok {
		if cl, ok := tok.Claims.(jwt.MapClaims); ok {
			if v, ok := cl["sub"]; ok {
				if s := fmt.Sprint(v); s != "" && s != "<nil>" {
					return s
				}
			}
		}
	}
	return "anon"
}
