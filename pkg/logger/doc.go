// Package logger builds slog loggers with automatic context attribute
// injection.
//
// A logger created here carries a set of ContextExtractor functions; each log
// call pulls request-scoped values (request id, tenant id, environment) out of
// the context and attaches them to the record. This keeps call sites free of
// boilerplate while every line still lands with full request correlation.
//
//	log := logger.New(
//		logger.WithEnvironment(env, "vendor-portal"),
//		logger.WithContextExtractors(
//			requestid.LoggerExtractor(),
//			tenant.LoggerExtractor(),
//		),
//	)
package logger
