// Package observability provides logging, metrics, and tracing.
package observability

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger to provide specialized logging methods.
type Logger struct {
	*slog.Logger
}

// GlobalLogger is the default logger instance for the application.
var GlobalLogger *Logger

func init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	GlobalLogger = &Logger{Logger: slog.New(handler)}
}

// StoreLogger provides structured logging for document store operations.
type StoreLogger struct {
	collection string
	logger     *Logger
}

// NewStoreLogger creates a new StoreLogger for the given collection.
func NewStoreLogger(collection string) *StoreLogger {
	return &StoreLogger{
		collection: collection,
		logger:     GlobalLogger,
	}
}

// LogOp logs a completed store operation.
func (l *StoreLogger) LogOp(ctx context.Context, operation, id string) {
	l.logger.InfoContext(ctx, "store operation",
		slog.String("collection", l.collection),
		slog.String("operation", operation),
		slog.String("id", id),
	)
}

// LogError logs a failed store operation.
func (l *StoreLogger) LogError(ctx context.Context, operation string, err error) {
	l.logger.ErrorContext(ctx, "store error",
		slog.String("collection", l.collection),
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}

// LogConsistencyFault records a detected violation of a cross-document
// invariant, such as a denormalized counter going negative. Faults are
// surfaced, never panicked on.
func LogConsistencyFault(ctx context.Context, invariant string, fields map[string]any) {
	attrs := []any{
		slog.String("invariant", invariant),
	}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	GlobalLogger.ErrorContext(ctx, "consistency fault", attrs...)
	ConsistencyFaults.WithLabelValues(invariant).Inc()
}

// LogPartialWrite records a two-document update that committed its first
// write but not its second. The pending marker on the first document lets a
// retry complete the operation.
func LogPartialWrite(ctx context.Context, operation, userID, articleID string, err error) {
	GlobalLogger.ErrorContext(ctx, "partial write",
		slog.String("operation", operation),
		slog.String("user_id", userID),
		slog.String("article_id", articleID),
		slog.String("error", err.Error()),
	)
	PartialWrites.WithLabelValues(operation).Inc()
}
