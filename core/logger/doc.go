// Package logger builds structured loggers on log/slog and provides attribute
// helpers for common fields.
//
//	log := logger.New(logger.WithDevelopment("tasktrackr"))
//	log.Info("server starting", logger.Component("server"))
//
// Context extractors add request-scoped attributes (request id, user id) to
// every record logged with a context:
//
//	log := logger.New(
//		logger.WithProduction("tasktrackr"),
//		logger.WithContextExtractors(middleware.RequestIDExtractor),
//	)
package logger
