package auth

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/danyip/imperfectionary-be/domain"
)

const maxPasswordLength = 128

var usernameFormat = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

type Service struct {
	userRepo       UserRepo
	passwordHasher PasswordHasher
	tokenManager   TokenManager
}

func NewService(userRepo UserRepo, passwordHasher PasswordHasher, tokenManager TokenManager) *Service {
	return &Service{userRepo, passwordHasher, tokenManager}
}

func validateEmailFormat(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && strings.Contains(email[at:], ".")
}

func (s *Service) Signup(ctx context.Context, username, email, password string) (string, domain.User, error) {
	if !usernameFormat.MatchString(username) {
		return "", domain.User{}, ErrInvalidUsernameFormat
	}

	if !validateEmailFormat(email) {
		return "", domain.User{}, ErrInvalidEmailFormat
	}

	if utf8.RuneCountInString(password) < 8 {
		return "", domain.User{}, ErrWeakPassword
	}

	if utf8.RuneCountInString(password) > maxPasswordLength {
		return "", domain.User{}, ErrPasswordTooLong
	}

	passwordHash, err := s.passwordHasher.Hash(password)
	if err != nil {
		return "", domain.User{}, err
	}

	id, err := s.userRepo.CreateUser(ctx, username, email, passwordHash)
	if err != nil {
		return "", domain.User{}, err
	}

	token, err := s.tokenManager.Generate(id)
	if err != nil {
		return "", domain.User{}, err
	}

	return token, domain.User{Id: id, Username: username, Email: email}, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", domain.User{}, err
	}

	match, err := s.passwordHasher.Compare(user.PasswordHash, password)
	if err != nil {
		return "", domain.User{}, err
	}
	if !match {
		return "", domain.User{}, ErrIncorrectPassword
	}

	token, err := s.tokenManager.Generate(user.Id)
	if err != nil {
		return "", domain.User{}, err
	}

	return token, user, nil
}

func (s *Service) Update(ctx context.Context, id, username, email string) (domain.User, error) {
	if !usernameFormat.MatchString(username) {
		return domain.User{}, ErrInvalidUsernameFormat
	}

	if !validateEmailFormat(email) {
		return domain.User{}, ErrInvalidEmailFormat
	}

	return s.userRepo.UpdateUser(ctx, id, username, email)
}

// VerifyToken returns the user id if the token is valid, else, it returns an error
func (s *Service) VerifyToken(token string) (string, error) {
	return s.tokenManager.Verify(token)
}
