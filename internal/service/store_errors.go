package service

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/spec-kit/user-service/pkg/util"
)

// uniqueViolation is the Postgres SQLSTATE for unique-constraint conflicts.
const uniqueViolation = "23505"

// classifyStoreError is the single dispatch point turning raw storage faults
// into domain error kinds. Full detail stays in the logs; callers only see
// the classified kind with a generic message.
func classifyStoreError(logger *zap.Logger, err error) error {
	var domainErr *util.DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		logger.Error("duplicate key in database", zap.String("detail", pgErr.Detail))
		return util.NewDuplicateEmail()
	}

	logger.Error("unclassified database error", zap.Error(err))
	return util.NewUnknown(err)
}
