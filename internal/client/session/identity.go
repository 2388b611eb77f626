package session

import (
	"fmt"

	"github.com/dmitrijs2005/gophchat/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
)

// identityFromToken reads user claims from a JWT credential without checking
// its signature; the backend stays the only authority on validity. It
// returns nil for opaque tokens or tokens without identifying claims.
func identityFromToken(token string) *models.User {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}

	u := models.User{
		ID:       firstClaim(claims, "sub", "user_id", "userId", "id", "_id"),
		Username: firstClaim(claims, "username", "name"),
		Email:    firstClaim(claims, "email"),
	}
	if u.ID == "" && u.Email == "" {
		return nil
	}
	return &u
}

func firstClaim(claims jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		switch v := claims[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}
