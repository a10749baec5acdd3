package service

import (
	"log/slog"

	"github.com/phrazzld/calorie-api/internal/domain"
	"github.com/phrazzld/calorie-api/internal/redact"
)

// listResult turns a store list result into the service result: storage
// failures become internal errors and an empty set becomes a not-found error
// with the given message.
func listResult[T any](
	log *slog.Logger,
	service, op string,
	items []T,
	err error,
	format string,
	args ...any,
) ([]T, error) {
	if err != nil {
		log.Error("list query failed",
			slog.String("operation", op),
			slog.String("error", redact.Error(err)))
		return nil, internalError(service, op, err)
	}
	if len(items) == 0 {
		return nil, domain.Errorf(domain.KindNotFound, format, args...)
	}
	return items, nil
}
