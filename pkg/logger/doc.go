// Package logger provides a structured logging interface for the emoji
// usage aggregator.
//
// It wraps the zerolog library to provide a clean, easy-to-use API with support for:
// - Multiple log levels (Debug, Info, Warn, Error, Fatal)
// - Structured logging with fields
// - Pretty console output with colors
// - Optional file output alongside the console
// - Global logger instance for easy access
//
// Basic Usage:
//
//	import "emojiusage/pkg/logger"
//
//	// Initialize the global logger
//	cfg := &config.LoggingConfig{
//	    Level: "info",
//	}
//	err := logger.Initialize(cfg)
//
//	// Use the global logger
//	logger.GetLogger().Info("Aggregation started")
//	logger.GetLogger().WithField("emoji", "party_parrot").Info("Processing emoji")
//
// Advanced Usage:
//
//	// Create a logger instance with fields
//	log := logger.GetLogger().
//	    WithField("component", "aggregator")
//
//	// Use structured logging
//	log.InfoWithFields("Cell measured", map[string]interface{}{
//	    "emoji": "thumbsup",
//	    "month": "2024-05",
//	    "count": 42,
//	})
package logger
