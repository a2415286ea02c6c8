package auth

import (
	"context"

	"github.com/danyip/imperfectionary-be/domain"
)

type UserRepo interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (string, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	GetUserById(ctx context.Context, id string) (domain.User, error)
	UpdateUser(ctx context.Context, id, username, email string) (domain.User, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) (bool, error)
}

type TokenManager interface {
	Generate(userId string) (string, error)
	Verify(token string) (string, error)
}
