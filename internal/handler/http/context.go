package http

import (
	"net/http"

	"github.com/etenderhq/etender-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

// identityFromContext builds the caller's identity from JWT claims. The
// auth middleware has already rejected requests without a valid token.
func identityFromContext(r *http.Request) (user.Identity, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return user.Identity{}, false
	}

	id, ok := claims["user_id"].(string)
	if !ok || id == "" {
		return user.Identity{}, false
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return user.Identity{
		ID:    id,
		Email: email,
		Role:  user.Role(role),
	}, true
}
