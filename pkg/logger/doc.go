// Package logger builds the storefront's *slog.Logger and keeps attribute
// names consistent across packages.
//
// New applies functional options (format, level, static attributes) and
// wraps the handler with LogHandlerDecorator, which runs ContextExtractor
// callbacks on every record so request IDs and the deployment environment
// show up without being passed around:
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Parse(os.Getenv("APP_ENV")), "storefront"),
//		logger.WithLevelName(os.Getenv("LOG_LEVEL")),
//		logger.WithContextExtractors(requestid.LoggerExtractor(), environment.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "item added", logger.ProductID(id), logger.CookieName(name))
//
// Development logs text at debug level; staging and production log JSON at
// info level. Error and Errors return an empty attribute for nil errors, so
// they can be passed unconditionally.
package logger
