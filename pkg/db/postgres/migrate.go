package postgres

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // драйвер postgres для миграций
	_ "github.com/golang-migrate/migrate/v4/source/file"       // источник миграций из файлов
	"go.uber.org/zap"

	"notekeep/pkg/logger"
)

// Константы для сообщений об ошибках миграций.
const (
	ErrCreateMigrationInstance = "failed to create migration instance"
	ErrApplyMigrations         = "failed to apply migrations"
	ErrResolveMigrationsDir    = "failed to resolve migrations directory"
)

const fileSourceScheme = "file://"

// MigrationSourceURL превращает каталог с миграциями в source URL со схемой
// file://, которую требует migrate.New. Относительный путь разрешается в
// абсолютный.
func MigrationSourceURL(migrationsDir string) (string, error) {
	if filepath.IsAbs(migrationsDir) {
		return fileSourceScheme + migrationsDir, nil
	}
	absPath, err := filepath.Abs(migrationsDir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrResolveMigrationsDir, err)
	}
	return fileSourceScheme + absPath, nil
}

// MigrateDSN применяет миграции базы данных из указанного source URL
// (см. MigrationSourceURL).
func MigrateDSN(ctx context.Context, dsn string, migrationsPath string) error {
	log := logger.Log(ctx)

	m, err := migrate.New(migrationsPath, dsn)
	if err != nil {
		log.Error(ctx, ErrCreateMigrationInstance, zap.Error(err), zap.String("path", migrationsPath))
		return fmt.Errorf("%s: %w", ErrCreateMigrationInstance, err)
	}
	defer func() {
		sourceErr, dbErr := m.Close()
		if sourceErr != nil {
			log.Warn(ctx, "failed to close migration source", zap.Error(sourceErr))
		}
		if dbErr != nil {
			log.Warn(ctx, "failed to close migration database handle", zap.Error(dbErr))
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Error(ctx, ErrApplyMigrations, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrApplyMigrations, err)
	}

	log.Info(ctx, LogMigrationsApplied)
	return nil
}
