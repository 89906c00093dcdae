package app_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"notekeep/internal/app"
	"notekeep/internal/domain/entities"
	"notekeep/internal/ports/api"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func storedDirectoryUser() *entities.User {
	now := time.Now()
	return &entities.User{
		ID:           "user-id-1",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "stored-hash",
		IsAdmin:      true,
		CreatedAt:    now.Add(-time.Hour),
		UpdatedAt:    now.Add(-time.Hour),
	}
}

func TestUserDirectoryUseCase_Create(t *testing.T) {
	ctx := testContext(t)

	t.Run("Администратор может выдать is_admin", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)

		passwordSvc.On("Hash", mock.Anything, "secret-password").Return("hashed", nil)
		userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
			return u.Username == "bob" && u.IsAdmin
		})).Return(&entities.User{ID: "user-id-2", Username: "bob", IsAdmin: true}, nil)

		uc := app.NewUserDirectoryUseCase(userRepo, passwordSvc)
		user, err := uc.Create(ctx, api.CreateUserParams{
			Username: "bob",
			Password: "secret-password",
			IsAdmin:  true,
		})

		require.NoError(t, err)
		assert.True(t, user.IsAdmin)
	})

	t.Run("Пустой username отклоняется", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)

		uc := app.NewUserDirectoryUseCase(userRepo, passwordSvc)
		user, err := uc.Create(ctx, api.CreateUserParams{Password: "secret-password"})

		assert.Nil(t, user)
		assert.ErrorIs(t, err, entities.ErrEmptyUsername)
		userRepo.AssertNotCalled(t, "Create")
	})
}

func TestUserDirectoryUseCase_Update(t *testing.T) {
	ctx := testContext(t)

	t.Run("Частичное изменение трогает только переданные поля", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)

		userRepo.On("FindByID", mock.Anything, "user-id-1").Return(storedDirectoryUser(), nil)
		userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
			return u.Username == "renamed" &&
				u.Email == "alice@example.com" &&
				u.IsAdmin &&
				u.PasswordHash == "stored-hash"
		})).Return(&entities.User{ID: "user-id-1", Username: "renamed"}, nil)

		uc := app.NewUserDirectoryUseCase(userRepo, passwordSvc)
		user, err := uc.Update(ctx, "user-id-1", api.UpdateUserParams{
			Username: strPtr("renamed"),
		})

		require.NoError(t, err)
		assert.Equal(t, "renamed", user.Username)
		passwordSvc.AssertNotCalled(t, "Hash")
	})

	t.Run("Полное замещение очищает email и сбрасывает is_admin", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)

		userRepo.On("FindByID", mock.Anything, "user-id-1").Return(storedDirectoryUser(), nil)
		userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
			return u.Username == "replaced" &&
				u.Email == "" &&
				!u.IsAdmin &&
				u.PasswordHash == "stored-hash"
		})).Return(&entities.User{ID: "user-id-1", Username: "replaced"}, nil)

		uc := app.NewUserDirectoryUseCase(userRepo, passwordSvc)
		_, err := uc.Update(ctx, "user-id-1", api.UpdateUserParams{
			Username:    strPtr("replaced"),
			FullReplace: true,
		})

		require.NoError(t, err)
		passwordSvc.AssertNotCalled(t, "Hash")
	})

	t.Run("Полное замещение без username отклоняется", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)

		userRepo.On("FindByID", mock.Anything, "user-id-1").Return(storedDirectoryUser(), nil)

		uc := app.NewUserDirectoryUseCase(userRepo, passwordSvc)
		user, err := uc.Update(ctx, "user-id-1", api.UpdateUserParams{FullReplace: true})

		assert.Nil(t, user)
		assert.ErrorIs(t, err, entities.ErrEmptyUsername)
		userRepo.AssertNotCalled(t, "Update")
	})

	t.Run("Переданный пароль хэшируется заново", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)

		userRepo.On("FindByID", mock.Anything, "user-id-1").Return(storedDirectoryUser(), nil)
		passwordSvc.On("Hash", mock.Anything, "new-password-123").Return("new-hash", nil)
		userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
			return u.PasswordHash == "new-hash"
		})).Return(&entities.User{ID: "user-id-1"}, nil)

		uc := app.NewUserDirectoryUseCase(userRepo, passwordSvc)
		_, err := uc.Update(ctx, "user-id-1", api.UpdateUserParams{
			Password: strPtr("new-password-123"),
		})

		require.NoError(t, err)
	})

	t.Run("Смена is_admin через частичное изменение", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)

		userRepo.On("FindByID", mock.Anything, "user-id-1").Return(storedDirectoryUser(), nil)
		userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
			return !u.IsAdmin && u.Username == "alice"
		})).Return(&entities.User{ID: "user-id-1", Username: "alice"}, nil)

		uc := app.NewUserDirectoryUseCase(userRepo, passwordSvc)
		_, err := uc.Update(ctx, "user-id-1", api.UpdateUserParams{
			IsAdmin: boolPtr(false),
		})

		require.NoError(t, err)
	})

	t.Run("Отсутствующая учетная запись дает ErrUserNotFound", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)

		userRepo.On("FindByID", mock.Anything, "missing-id").Return(nil, entities.ErrUserNotFound)

		uc := app.NewUserDirectoryUseCase(userRepo, passwordSvc)
		user, err := uc.Update(ctx, "missing-id", api.UpdateUserParams{Username: strPtr("x")})

		assert.Nil(t, user)
		assert.ErrorIs(t, err, entities.ErrUserNotFound)
	})

	t.Run("Переименование в занятый username дает ErrUsernameTaken", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)

		userRepo.On("FindByID", mock.Anything, "user-id-1").Return(storedDirectoryUser(), nil)
		userRepo.On("Update", mock.Anything, mock.Anything).Return(nil, entities.ErrUsernameTaken)

		uc := app.NewUserDirectoryUseCase(userRepo, passwordSvc)
		user, err := uc.Update(ctx, "user-id-1", api.UpdateUserParams{Username: strPtr("taken")})

		assert.Nil(t, user)
		assert.ErrorIs(t, err, entities.ErrUsernameTaken)
	})
}

func TestUserDirectoryUseCase_ListGetDelete(t *testing.T) {
	ctx := testContext(t)

	t.Run("Список пользователей", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)

		userRepo.On("List", mock.Anything).Return([]*entities.User{storedDirectoryUser()}, nil)

		uc := app.NewUserDirectoryUseCase(userRepo, passwordSvc)
		users, err := uc.List(ctx)

		require.NoError(t, err)
		require.Len(t, users, 1)
	})

	t.Run("Получение по ID", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)

		userRepo.On("FindByID", mock.Anything, "user-id-1").Return(storedDirectoryUser(), nil)

		uc := app.NewUserDirectoryUseCase(userRepo, passwordSvc)
		user, err := uc.Get(ctx, "user-id-1")

		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("Удаление отсутствующего дает ErrUserNotFound", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)

		userRepo.On("Delete", mock.Anything, "missing-id").Return(entities.ErrUserNotFound)

		uc := app.NewUserDirectoryUseCase(userRepo, passwordSvc)
		err := uc.Delete(ctx, "missing-id")

		assert.ErrorIs(t, err, entities.ErrUserNotFound)
	})

	t.Run("Успешное удаление", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		passwordSvc := new(mockPasswordService)

		userRepo.On("Delete", mock.Anything, "user-id-1").Return(nil)

		uc := app.NewUserDirectoryUseCase(userRepo, passwordSvc)
		err := uc.Delete(ctx, "user-id-1")

		require.NoError(t, err)
	})
}
