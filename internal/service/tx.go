package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/faizm10/DressToImpress-sub000/internal/repository"
)

// inTx runs fn against a transactional Repository and commits when fn succeeds.
// Without a connection (unit tests) fn runs against repo directly.
func inTx(ctx context.Context, repo *repository.Repository, logger *zap.Logger, fn func(txRepo *repository.Repository) error) error {
	tx, err := repo.BeginTx(ctx)
	if err != nil {
		logger.Error("begin transaction failed", zap.Error(err))
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	if err := fn(repo.WithTx(tx)); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			logger.Error("commit transaction failed", zap.Error(err))
			return err
		}
	}
	return nil
}
