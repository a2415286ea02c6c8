package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/danyip/imperfectionary-be/auth"
	"github.com/danyip/imperfectionary-be/domain"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) CreateUser(ctx context.Context, username, email, passwordHash string) (string, error) {
	args := m.Called(ctx, username, email, passwordHash)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepo) GetUserById(ctx context.Context, id string) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepo) UpdateUser(ctx context.Context, id, username, email string) (domain.User, error) {
	args := m.Called(ctx, id, username, email)
	return args.Get(0).(domain.User), args.Error(1)
}

type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Compare(hash, password string) (bool, error) {
	args := m.Called(hash, password)
	return args.Bool(0), args.Error(1)
}

type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) Generate(userId string) (string, error) {
	args := m.Called(userId)
	return args.String(0), args.Error(1)
}

func (m *MockTokenManager) Verify(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

func newService() (*auth.Service, *MockUserRepo, *MockPasswordHasher, *MockTokenManager) {
	repo := &MockUserRepo{}
	hasher := &MockPasswordHasher{}
	tokens := &MockTokenManager{}
	return auth.NewService(repo, hasher, tokens), repo, hasher, tokens
}

func TestLoginSuccess(t *testing.T) {
	svc, repo, hasher, tokens := newService()
	ctx := context.Background()

	stored := domain.User{Id: "id1", Username: "ann", Email: "ann@example.com", PasswordHash: "hash"}
	repo.On("GetUserByEmail", ctx, "ann@example.com").Return(stored, nil)
	hasher.On("Compare", "hash", "chicken12").Return(true, nil)
	tokens.On("Generate", "id1").Return("token123", nil)

	token, user, err := svc.Login(ctx, "ann@example.com", "chicken12")

	require.NoError(t, err)
	assert.Equal(t, "token123", token)
	assert.Equal(t, "ann", user.Username)
	assert.Equal(t, "ann@example.com", user.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, repo, hasher, _ := newService()
	ctx := context.Background()

	stored := domain.User{Id: "id1", Username: "ann", PasswordHash: "hash"}
	repo.On("GetUserByEmail", ctx, "ann@example.com").Return(stored, nil)
	hasher.On("Compare", "hash", "wrong").Return(false, nil)

	_, _, err := svc.Login(ctx, "ann@example.com", "wrong")

	assert.ErrorIs(t, err, auth.ErrIncorrectPassword)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, repo, _, _ := newService()
	ctx := context.Background()

	repo.On("GetUserByEmail", ctx, "ghost@example.com").Return(domain.User{}, domain.ErrUserNotFound)

	_, _, err := svc.Login(ctx, "ghost@example.com", "whatever1")

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSignupSuccess(t *testing.T) {
	svc, repo, hasher, tokens := newService()
	ctx := context.Background()

	hasher.On("Hash", "chicken12").Return("hash", nil)
	repo.On("CreateUser", ctx, "ann", "ann@example.com", "hash").Return("id1", nil)
	tokens.On("Generate", "id1").Return("token123", nil)

	token, user, err := svc.Signup(ctx, "ann", "ann@example.com", "chicken12")

	require.NoError(t, err)
	assert.Equal(t, "token123", token)
	assert.Equal(t, "id1", user.Id)
	assert.Equal(t, "ann", user.Username)
}

func TestSignupValidation(t *testing.T) {
	cases := []struct {
		description string
		username    string
		email       string
		password    string
		expected    error
	}{
		{"username too short", "ab", "a@b.com", "chicken12", auth.ErrInvalidUsernameFormat},
		{"username with spaces", "bad name", "a@b.com", "chicken12", auth.ErrInvalidUsernameFormat},
		{"email without at", "ann", "nope", "chicken12", auth.ErrInvalidEmailFormat},
		{"email without domain dot", "ann", "a@b", "chicken12", auth.ErrInvalidEmailFormat},
		{"weak password", "ann", "a@b.com", "short", auth.ErrWeakPassword},
	}

	for _, tc := range cases {
		t.Run(tc.description, func(t *testing.T) {
			svc, _, _, _ := newService()

			_, _, err := svc.Signup(context.Background(), tc.username, tc.email, tc.password)

			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	svc, repo, hasher, _ := newService()
	ctx := context.Background()

	hasher.On("Hash", "chicken12").Return("hash", nil)
	repo.On("CreateUser", ctx, "ann", "ann@example.com", "hash").Return("", domain.ErrDuplicateUsername)

	_, _, err := svc.Signup(ctx, "ann", "ann@example.com", "chicken12")

	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
}

func TestUpdateSuccess(t *testing.T) {
	svc, repo, _, _ := newService()
	ctx := context.Background()

	updated := domain.User{Id: "id1", Username: "ann2", Email: "ann2@example.com"}
	repo.On("UpdateUser", ctx, "id1", "ann2", "ann2@example.com").Return(updated, nil)

	user, err := svc.Update(ctx, "id1", "ann2", "ann2@example.com")

	require.NoError(t, err)
	assert.Equal(t, "ann2", user.Username)
}

func TestUpdateRejectsBadUsername(t *testing.T) {
	svc, _, _, _ := newService()

	_, err := svc.Update(context.Background(), "id1", "no way", "a@b.com")

	assert.ErrorIs(t, err, auth.ErrInvalidUsernameFormat)
}
