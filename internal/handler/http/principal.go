package http

import (
	"context"

	"github.com/go-chi/jwtauth/v5"
	"github.com/squad-internal/hr-backend-go/internal/domain/auth"
	"github.com/squad-internal/hr-backend-go/internal/domain/user"
)

// principal is the identity pulled from the verified access token.
type principal struct {
	UserID string
	Email  string
	Name   string
	Role   user.Role
}

func principalFromContext(ctx context.Context) (principal, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return principal{}, auth.ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return principal{}, auth.ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)

	return principal{
		UserID: userID,
		Email:  email,
		Name:   name,
		Role:   user.Role(role),
	}, nil
}
