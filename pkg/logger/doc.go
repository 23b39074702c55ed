// Package logger provides a context-aware factory for Go's slog package.
//
// It exposes a single constructor, New, configured through functional
// options: output format (text or json), minimum level, static attributes,
// and ContextExtractor callbacks that inject request-scoped values (user id,
// organization id) into every record logged with a context.
//
//	log := logger.New(
//	    logger.WithFormat(logger.FormatText),
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithContextExtractors(org.LoggerExtractor()),
//	)
//
// NewFromEnv reads format and level from LOG_FORMAT and LOG_LEVEL, which is
// the expected path for services deploying the authorization core.
//
// Attribute constructors in attr.go (Error, UserID, OrgID, Role, Permission)
// keep attribute naming consistent across packages.
package logger
