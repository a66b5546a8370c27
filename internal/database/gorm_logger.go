package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// gormLogger sends GORM output to slog. Rendered statements are logged at
// Debug level and only formatted when that level is enabled.
type gormLogger struct {
	logger *slog.Logger
}

// LogMode is a no-op; level filtering is handled by slog.
func (l gormLogger) LogMode(logger.LogLevel) logger.Interface { return l }

// Info logs informational messages from GORM.
func (l gormLogger) Info(ctx context.Context, msg string, args ...any) {
	l.log().InfoContext(ctx, fmt.Sprintf(msg, args...))
}

// Warn logs warning messages from GORM.
func (l gormLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.log().WarnContext(ctx, fmt.Sprintf(msg, args...))
}

// Error logs error messages from GORM.
func (l gormLogger) Error(ctx context.Context, msg string, args ...any) {
	l.log().ErrorContext(ctx, fmt.Sprintf(msg, args...))
}

// maxSQLLength is the longest statement logged before truncation.
const maxSQLLength = 200

// truncateSQL replaces the middle of long statements with "...".
func truncateSQL(sql string) string {
	if len(sql) <= maxSQLLength {
		return sql
	}
	half := (maxSQLLength - 3) / 2
	return sql[:half] + "..." + sql[len(sql)-half:]
}

// Trace is called by GORM after every statement, including dry runs.
func (l gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	log := l.log()
	elapsed := time.Since(begin)

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		sql, rows := fc()
		log.ErrorContext(ctx, "gorm statement error",
			"sql", truncateSQL(sql),
			"rows", rows,
			"duration", elapsed,
			"error", err,
		)
		return
	}

	if !log.Enabled(ctx, slog.LevelDebug) {
		return
	}

	sql, rows := fc()
	log.DebugContext(ctx, "gorm statement",
		"sql", truncateSQL(sql),
		"rows", rows,
		"duration", elapsed,
	)
}

func (l gormLogger) log() *slog.Logger {
	if l.logger == nil {
		return slog.Default()
	}
	return l.logger
}
