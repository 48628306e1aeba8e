// Package logger provides structured logging built on zerolog.
//
// Components create their own tagged logger or use the package-level global:
//
//	log := logger.NewDefault("methodauth")
//	log.Debug("attribute resolved", logger.Fields("method", "Transfer"))
//
// Configuration comes from a Config struct (usually loaded by the config
// package) or from LOG_* environment variables via NewFromEnv.
package logger
