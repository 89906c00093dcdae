// Package app реализует бизнес-логику хранилища заметок.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"notekeep/internal/domain/entities"
	domain "notekeep/internal/domain/services"
	"notekeep/internal/ports/api"
	"notekeep/internal/ports/repositories"
	svc "notekeep/internal/ports/services"
	"notekeep/pkg/logger"
)

const (
	methodRegister   = "Register"
	methodLogin      = "Login"
	methodRefresh    = "Refresh"
	methodLogout     = "Logout"
	methodGetProfile = "GetProfile"

	msgStartRegistration  = "starting user registration"
	msgEmptyUsername      = "empty username provided"
	msgUserRegistered     = "user registered successfully"
	msgLoginAttempt       = "login attempt"
	msgLoginNonExistent   = "login attempt with unknown username"
	msgWrongPassword      = "wrong password provided"
	msgUserLoggedIn       = "user logged in successfully"
	msgRefreshingTokens   = "refreshing tokens"
	msgRevokedToken       = "attempt to use revoked refresh token"
	msgTokensRefreshed    = "tokens refreshed successfully"
	msgProcessingLogout   = "processing logout request"
	msgUserLoggedOut      = "user logged out successfully"
	msgRequestingProfile  = "requesting user profile"
	msgProfileRetrieved   = "user profile successfully retrieved"
	msgErrHashPassword    = "failed to hash password"
	msgErrCreateUser      = "failed to create user"
	msgErrGenerateTokens  = "failed to generate tokens"
	msgErrFindingUser     = "error finding user"
	msgErrVerifyPassword  = "error verifying password"
	msgErrCheckingToken   = "failed to check token revocation"
	msgErrRevokingToken   = "failed to revoke token"

	errCtxValidatingUsername = "validating username"
	errCtxHashingPassword    = "hashing password"
	errCtxCreatingUser       = "creating user"
	errCtxGeneratingTokens   = "generating tokens"
	errCtxInvalidCredentials = "invalid credentials"
	errCtxFindingUser        = "finding user"
	errCtxVerifyingPassword  = "verifying password"
	errCtxValidatingToken    = "validating refresh token"
	errCtxCheckingRevocation = "checking token revocation"
	errCtxRevokingToken      = "revoking token"
	errCtxFetchingProfile    = "fetching user profile"
)

// AuthUseCaseImpl реализует интерфейс api.AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
	denylist    svc.TokenDenylist
}

// NewAuthUseCase создает новый экземпляр сервиса аутентификации.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
	denylist svc.TokenDenylist,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		denylist:    denylist,
	}
}

// Register создает нового пользователя. Самостоятельная регистрация никогда
// не выдает административных прав; уникальность username гарантирует база.
func (a *AuthUseCaseImpl) Register(ctx context.Context, username, email, password string) (*api.AuthResult, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("username", username))
	log.Debug(ctx, msgStartRegistration)

	if username == "" {
		log.Debug(ctx, msgEmptyUsername)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUsername, entities.ErrEmptyUsername)
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, password)
	if err != nil {
		log.Debug(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	newUser := &entities.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		IsAdmin:      false,
	}

	createdUser, err := a.userRepo.Create(ctx, newUser)
	if err != nil {
		log.Debug(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", createdUser.ID))

	tokens, err := a.tokenSvc.GenerateTokenPair(ctx, createdUser)
	if err != nil {
		log.Error(ctx, msgErrGenerateTokens, zap.Error(err), zap.String("userID", createdUser.ID))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingTokens, err)
	}

	return &api.AuthResult{User: createdUser, Tokens: tokens}, nil
}

// Login проверяет учетные данные и выдает пару токенов. Неизвестный
// username и неверный пароль неразличимы для вызывающего.
func (a *AuthUseCaseImpl) Login(ctx context.Context, username, password string) (*api.AuthResult, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("username", username))
	log.Debug(ctx, msgLoginAttempt)

	user, err := a.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, domain.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgWrongPassword)
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, domain.ErrInvalidCredentials)
	}

	tokens, err := a.tokenSvc.GenerateTokenPair(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrGenerateTokens, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingTokens, err)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))
	return &api.AuthResult{User: user, Tokens: tokens}, nil
}

// Refresh выдает новую пару токенов и отзывает использованный refresh токен.
func (a *AuthUseCaseImpl) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRefresh))
	log.Debug(ctx, msgRefreshingTokens)

	claims, err := a.tokenSvc.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, err)
	}

	revoked, err := a.denylist.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		log.Error(ctx, msgErrCheckingToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingRevocation, err)
	}
	if revoked {
		log.Debug(ctx, msgRevokedToken, zap.String("userID", claims.UserID))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, domain.ErrTokenRevoked)
	}

	user, err := a.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, domain.ErrInvalidToken)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	if err := a.denylist.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		log.Error(ctx, msgErrRevokingToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxRevokingToken, err)
	}

	tokens, err := a.tokenSvc.GenerateTokenPair(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrGenerateTokens, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingTokens, err)
	}

	log.Info(ctx, msgTokensRefreshed, zap.String("userID", user.ID))
	return tokens, nil
}

// Logout отзывает предъявленные токены. Уже недействительные токены
// молча пропускаются: повторный выход не является ошибкой.
func (a *AuthUseCaseImpl) Logout(ctx context.Context, accessToken, refreshToken string) error {
	log := logger.Log(ctx).With(zap.String("method", methodLogout))
	log.Debug(ctx, msgProcessingLogout)

	if accessToken != "" {
		if claims, err := a.tokenSvc.ValidateAccessToken(ctx, accessToken); err == nil {
			if err := a.denylist.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
				log.Error(ctx, msgErrRevokingToken, zap.Error(err))
				return fmt.Errorf("%s: %w", errCtxRevokingToken, err)
			}
		}
	}

	if refreshToken != "" {
		if claims, err := a.tokenSvc.ValidateRefreshToken(ctx, refreshToken); err == nil {
			if err := a.denylist.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
				log.Error(ctx, msgErrRevokingToken, zap.Error(err))
				return fmt.Errorf("%s: %w", errCtxRevokingToken, err)
			}
		}
	}

	log.Info(ctx, msgUserLoggedOut)
	return nil
}

// GetProfile возвращает учетную запись вызывающего.
func (a *AuthUseCaseImpl) GetProfile(ctx context.Context, userID string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetProfile), zap.String("userID", userID))
	log.Debug(ctx, msgRequestingProfile)

	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Debug(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingProfile, err)
	}

	log.Debug(ctx, msgProfileRetrieved)
	return user, nil
}
