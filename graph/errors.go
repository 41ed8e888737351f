package graph

import (
	"context"
	"errors"
	"log/slog"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"restaurant-graphql-api/internal/apperr"
)

// ErrorPresenter writes the apperr kind of a resolver error to
// extensions.code. Errors without a kind keep their message and are logged.
func ErrorPresenter(logger *slog.Logger) graphql.ErrorPresenterFunc {
	return func(ctx context.Context, err error) *gqlerror.Error {
		gqlErr := graphql.DefaultErrorPresenter(ctx, err)

		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			gqlErr.Message = appErr.Message
			if gqlErr.Extensions == nil {
				gqlErr.Extensions = map[string]any{}
			}
			gqlErr.Extensions["code"] = string(appErr.Kind)
			return gqlErr
		}

		logger.ErrorContext(ctx, "resolver failed",
			slog.String("path", gqlErr.Path.String()),
			slog.Any("error", err),
		)
		return gqlErr
	}
}
