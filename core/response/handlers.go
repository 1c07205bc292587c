package response

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/tasktrackr/core/handler"
	"github.com/dmitrymomot/tasktrackr/core/logger"
)

// JSONErrorHandler writes err as an HTTPError body.
func JSONErrorHandler[C handler.Context](ctx C, err error) {
	writeError(ctx, AsHTTPError(err))
}

// JSONErrorHandlerWithLogger is JSONErrorHandler that also logs 5xx
// responses with their underlying cause.
func JSONErrorHandlerWithLogger[C handler.Context](log *slog.Logger) handler.ErrorHandler[C] {
	return func(ctx C, err error) {
		httpErr := AsHTTPError(err)
		if httpErr.Status >= http.StatusInternalServerError {
			req := ctx.Request()
			log.ErrorContext(ctx, "request failed",
				logger.Method(req.Method),
				logger.Path(req.URL.Path),
				logger.StatusCode(httpErr.Status),
				logger.Error(err),
			)
		}
		writeError(ctx, httpErr)
	}
}

func writeError(ctx handler.Context, e HTTPError) {
	_ = JSONWithStatus(e, e.Status)(ctx.ResponseWriter(), ctx.Request())
}
