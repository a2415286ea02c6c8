package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/danyip/imperfectionary-be/domain"
)

var (
	ErrMissingTokenStr          = "missing-token"
	ErrExpiredTokenStr          = "expired-token"
	ErrServerTimeoutStr         = "server-timeout"
	ErrInvalidRequestFormatStr  = "bad-request-format"
	ErrInvalidCredentialsStr    = "invalid-credentials"
	ErrUnknownStr               = "unknown-error"
	ErrUsernameAlreadyExistsStr = "username-already-exists"
	ErrEmailAlreadyExistsStr    = "email-already-exists"
	ErrWeakPasswordStr          = "weak-password"
	ErrPasswordTooLongStr       = "password-too-long"
	ErrInvalidUsernameFormatStr = "invalid-username-format"
	ErrInvalidEmailFormatStr    = "invalid-email-format"
)

type AuthService interface {
	Signup(ctx context.Context, username, email, password string) (string, domain.User, error)
	Login(ctx context.Context, email, password string) (string, domain.User, error)
	Update(ctx context.Context, id, username, email string) (domain.User, error)
	VerifyToken(token string) (string, error)
}

type userBody struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type AuthHandler struct {
	authService AuthService
}

func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{authService: service}
}

// RequireAuthMiddleware verifies the bearer token and stores the verified
// user id in the gin context under "id".
func (ah *AuthHandler) RequireAuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": ErrMissingTokenStr})
			return
		}

		id, err := ah.authService.VerifyToken(token)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrExpiredToken):
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": ErrExpiredTokenStr})
			default:
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": ErrInvalidCredentialsStr})
			}
			return
		}

		ctx.Set("id", id)
		ctx.Next()
	}
}

func (ah *AuthHandler) LoginHandler(ctx *gin.Context) {
	var loginCredentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := ctx.ShouldBindJSON(&loginCredentials); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": ErrInvalidRequestFormatStr})
		return
	}

	reqCtx := ctx.Request.Context()

	token, user, err := ah.authService.Login(reqCtx, loginCredentials.Email, loginCredentials.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrIncorrectPassword), errors.Is(err, domain.ErrUserNotFound):
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": ErrInvalidCredentialsStr})
		case errors.Is(err, context.DeadlineExceeded):
			ctx.AbortWithStatusJSON(http.StatusGatewayTimeout, gin.H{"message": ErrServerTimeoutStr})
		case errors.Is(err, context.Canceled):
			ctx.AbortWithStatus(499)
		default:
			log.Error().Err(err).Str("email", loginCredentials.Email).Msg("login failed unexpectedly")
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": ErrUnknownStr})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  userBody{Username: user.Username, Email: user.Email},
	})
}

func (ah *AuthHandler) SignupHandler(ctx *gin.Context) {
	var signupCredentials struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := ctx.ShouldBindJSON(&signupCredentials); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": ErrInvalidRequestFormatStr})
		return
	}

	reqCtx := ctx.Request.Context()

	token, user, err := ah.authService.Signup(reqCtx, signupCredentials.Username, signupCredentials.Email, signupCredentials.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateUsername):
			ctx.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"message": ErrUsernameAlreadyExistsStr})
		case errors.Is(err, domain.ErrDuplicateEmail):
			ctx.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"message": ErrEmailAlreadyExistsStr})
		case errors.Is(err, ErrWeakPassword):
			ctx.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"message": ErrWeakPasswordStr})
		case errors.Is(err, ErrPasswordTooLong):
			ctx.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"message": ErrPasswordTooLongStr})
		case errors.Is(err, ErrInvalidUsernameFormat):
			ctx.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"message": ErrInvalidUsernameFormatStr})
		case errors.Is(err, ErrInvalidEmailFormat):
			ctx.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"message": ErrInvalidEmailFormatStr})
		case errors.Is(err, context.DeadlineExceeded):
			ctx.AbortWithStatusJSON(http.StatusGatewayTimeout, gin.H{"message": ErrServerTimeoutStr})
		case errors.Is(err, context.Canceled):
			ctx.AbortWithStatus(499) // http code for "Client Closed Request"
		default:
			log.Error().Err(err).Str("username", signupCredentials.Username).Msg("signup failed unexpectedly")
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": ErrUnknownStr})
		}
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  userBody{Username: user.Username, Email: user.Email},
	})
}

func (ah *AuthHandler) UpdateHandler(ctx *gin.Context) {
	id := ctx.GetString("id")
	if id == "" {
		log.Error().Str("ip", ctx.ClientIP()).Msg("update reached without id, middleware missing?")
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": ErrUnknownStr})
		return
	}

	var body userBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": ErrInvalidRequestFormatStr})
		return
	}

	user, err := ah.authService.Update(ctx.Request.Context(), id, body.Username, body.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateUsername):
			ctx.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"message": ErrUsernameAlreadyExistsStr})
		case errors.Is(err, domain.ErrDuplicateEmail):
			ctx.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"message": ErrEmailAlreadyExistsStr})
		case errors.Is(err, ErrInvalidUsernameFormat):
			ctx.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"message": ErrInvalidUsernameFormatStr})
		case errors.Is(err, ErrInvalidEmailFormat):
			ctx.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"message": ErrInvalidEmailFormatStr})
		case errors.Is(err, domain.ErrUserNotFound):
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": ErrInvalidCredentialsStr})
		default:
			log.Error().Err(err).Str("id", id).Msg("user update failed unexpectedly")
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": ErrUnknownStr})
		}
		return
	}

	ctx.JSON(http.StatusOK, userBody{Username: user.Username, Email: user.Email})
}
