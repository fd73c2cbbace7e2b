// Package logger provides structured logging for apikit services using
// zerolog.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("response")
//	log.Info("item created", logger.Fields("id", id))
package logger
