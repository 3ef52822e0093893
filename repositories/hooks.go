package repositories

import (
	"log/slog"
	"time"

	"blog-api/logger"

	"gorm.io/gorm"
)

const queryStartKey = "query_timer:start"

// QueryTimer is a gorm plugin that times every statement and logs the slow ones
// with the logger of the request that issued them.
type QueryTimer struct {
	log       *slog.Logger
	threshold time.Duration
}

func NewQueryTimer(log *slog.Logger, threshold time.Duration) *QueryTimer {
	return &QueryTimer{log: logger.Resolve(log), threshold: threshold}
}

func (t *QueryTimer) Name() string {
	return "blog:query_timer"
}

func (t *QueryTimer) Initialize(db *gorm.DB) error {
	cb := db.Callback()

	if err := cb.Create().Before("gorm:create").Register("timer:before_create", t.before); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("timer:after_create", t.after("create")); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("timer:before_query", t.before); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("timer:after_query", t.after("query")); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("timer:before_update", t.before); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("timer:after_update", t.after("update")); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("timer:before_delete", t.before); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("timer:after_delete", t.after("delete")); err != nil {
		return err
	}
	if err := cb.Raw().Before("gorm:raw").Register("timer:before_raw", t.before); err != nil {
		return err
	}
	return cb.Raw().After("gorm:raw").Register("timer:after_raw", t.after("raw"))
}

func (t *QueryTimer) before(db *gorm.DB) {
	db.InstanceSet(queryStartKey, time.Now())
}

func (t *QueryTimer) after(op string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(queryStartKey)
		if !ok {
			return
		}
		start, ok := v.(time.Time)
		if !ok {
			return
		}
		elapsed := time.Since(start)

		log := logger.FromContextOr(db.Statement.Context, t.log)

		attrs := []any{
			"op", op,
			"table", db.Statement.Table,
			"rows", db.Statement.RowsAffected,
			"elapsed_ms", elapsed.Milliseconds(),
		}
		if db.Error != nil && !IsNotFound(db.Error) {
			log.Error("query failed", append(attrs, "sql", db.Statement.SQL.String(), "error", db.Error.Error())...)
			return
		}
		if t.threshold > 0 && elapsed >= t.threshold {
			log.Warn("slow query", append(attrs, "sql", db.Statement.SQL.String())...)
			return
		}
		log.Debug("query", attrs...)
	}
}
