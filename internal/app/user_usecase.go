package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"notekeep/internal/domain/entities"
	"notekeep/internal/ports/api"
	"notekeep/internal/ports/repositories"
	svc "notekeep/internal/ports/services"
	"notekeep/pkg/logger"
)

const (
	methodUserList   = "List"
	methodUserCreate = "Create"
	methodUserGet    = "Get"
	methodUserUpdate = "Update"
	methodUserDelete = "Delete"

	msgListingUsers   = "listing user directory"
	msgCreatingUser   = "creating user account"
	msgUserCreated    = "user account created"
	msgFetchingUser   = "fetching user account"
	msgUpdatingUser   = "updating user account"
	msgUserUpdated    = "user account updated"
	msgDeletingUser   = "deleting user account"
	msgUserDeleted    = "user account deleted"
	msgErrListUsers   = "failed to list users"
	msgErrUpdateUser  = "failed to update user"
	msgErrDeleteUser  = "failed to delete user"

	errCtxListingUsers = "listing users"
	errCtxUpdatingUser = "updating user"
	errCtxDeletingUser = "deleting user"
)

// UserDirectoryUseCaseImpl реализует интерфейс api.UserDirectoryUseCase.
// Проверка административных прав вызывающего выполняется на уровне
// транспорта до вызова этих операций.
type UserDirectoryUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
}

// NewUserDirectoryUseCase создает новый экземпляр справочника пользователей.
func NewUserDirectoryUseCase(
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
) api.UserDirectoryUseCase {
	return &UserDirectoryUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
	}
}

// List возвращает все учетные записи.
func (u *UserDirectoryUseCaseImpl) List(ctx context.Context) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUserList))
	log.Debug(ctx, msgListingUsers)

	users, err := u.userRepo.List(ctx)
	if err != nil {
		log.Error(ctx, msgErrListUsers, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingUsers, err)
	}

	return users, nil
}

// Create создает учетную запись с указанными полями. В отличие от
// самостоятельной регистрации администратор может выдать is_admin.
func (u *UserDirectoryUseCaseImpl) Create(ctx context.Context, params api.CreateUserParams) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUserCreate), zap.String("username", params.Username))
	log.Debug(ctx, msgCreatingUser)

	if params.Username == "" {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUsername, entities.ErrEmptyUsername)
	}

	hashedPassword, err := u.passwordSvc.Hash(ctx, params.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	newUser := &entities.User{
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: hashedPassword,
		IsAdmin:      params.IsAdmin,
	}

	createdUser, err := u.userRepo.Create(ctx, newUser)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserCreated, zap.String("userID", createdUser.ID))
	return createdUser, nil
}

// Get возвращает учетную запись по ID.
func (u *UserDirectoryUseCaseImpl) Get(ctx context.Context, userID string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUserGet), zap.String("userID", userID))
	log.Debug(ctx, msgFetchingUser)

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	return user, nil
}

// Update применяет изменения к учетной записи. При полном замещении не
// переданный email очищается, не переданный is_admin сбрасывается,
// а пароль меняется только когда передан. Идентификатор и отметки
// времени не подлежат изменению в любом режиме.
func (u *UserDirectoryUseCaseImpl) Update(ctx context.Context, userID string, params api.UpdateUserParams) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUserUpdate), zap.String("userID", userID))
	log.Debug(ctx, msgUpdatingUser, zap.Bool("fullReplace", params.FullReplace))

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	if params.FullReplace && params.Username == nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUsername, entities.ErrEmptyUsername)
	}

	if params.Username != nil {
		if *params.Username == "" {
			return nil, fmt.Errorf("%s: %w", errCtxValidatingUsername, entities.ErrEmptyUsername)
		}
		user.Username = *params.Username
	}

	if params.Email != nil {
		user.Email = *params.Email
	} else if params.FullReplace {
		user.Email = ""
	}

	if params.IsAdmin != nil {
		user.IsAdmin = *params.IsAdmin
	} else if params.FullReplace {
		user.IsAdmin = false
	}

	if params.Password != nil {
		hashedPassword, err := u.passwordSvc.Hash(ctx, *params.Password)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
		}
		user.PasswordHash = hashedPassword
	}

	updatedUser, err := u.userRepo.Update(ctx, user)
	if err != nil {
		log.Debug(ctx, msgErrUpdateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingUser, err)
	}

	log.Info(ctx, msgUserUpdated)
	return updatedUser, nil
}

// Delete удаляет учетную запись; заметки удаляются каскадом в базе.
func (u *UserDirectoryUseCaseImpl) Delete(ctx context.Context, userID string) error {
	log := logger.Log(ctx).With(zap.String("method", methodUserDelete), zap.String("userID", userID))
	log.Debug(ctx, msgDeletingUser)

	if err := u.userRepo.Delete(ctx, userID); err != nil {
		log.Debug(ctx, msgErrDeleteUser, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingUser, err)
	}

	log.Info(ctx, msgUserDeleted)
	return nil
}
