package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aalemi-dev/longtrace/observability"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SQLWriter is a Writer backed by a GORM connection pool. It speaks PostgreSQL or
// MySQL/MariaDB depending on the connection string.
//
// Concurrency: the active *gorm.DB is stored in an atomic pointer. EnsureDatabase swaps
// it once, from the server-level connection to the resolved database; WriteBatch calls
// load a snapshot and never hold a lock while talking to the store.
type SQLWriter struct {
	opts     Options
	target   target
	client   atomic.Pointer[gorm.DB]
	resolved atomic.Pointer[string]
	observer observability.Observer
	logger   Logger

	ensureMu sync.Mutex
}

var _ Writer = (*SQLWriter)(nil)

// Open parses connectionString, connects to the server-level database and verifies the
// connection within opts.ConnectTimeout. The returned writer must be resolved with
// EnsureDatabase before it accepts batches.
//
// Connection strings of the form mysql://... select MySQL, everything else is handed
// to the PostgreSQL driver. Any failure is reported as ErrConnection.
func Open(ctx context.Context, connectionString string, opts Options) (*SQLWriter, error) {
	opts = opts.withDefaults()

	t, err := parseTarget(connectionString)
	if err != nil {
		return nil, err
	}

	db, err := connect(ctx, t.dialect, t.dsn(t.serverDatabase(), opts.ConnectTimeout), opts)
	if err != nil {
		return nil, err
	}

	w := &SQLWriter{
		opts:   opts,
		target: t,
	}
	w.client.Store(db)
	return w, nil
}

// connect opens a pool for dsn and pings it. The automatic ping of gorm.Open is
// disabled so the ping can honour the connect timeout.
func connect(ctx context.Context, dialect Dialect, dsn string, opts Options) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch dialect {
	case DialectMySQL:
		dialector = gormmysql.New(gormmysql.Config{
			DSN:                       dsn,
			SkipInitializeWithVersion: true,
		})
	default:
		dialector = gormpostgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormlogger.Discard,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s connection: %w", ErrConnection, dialect, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get %s database instance: %w", ErrConnection, dialect, err)
	}
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%w: %s ping failed: %w", ErrConnection, dialect, err)
	}
	return db, nil
}

// EnsureDatabase resolves candidate to a database, switches the pool over to it and
// creates the spans and logs tables.
//
// A database named exactly candidate (surrounding blanks trimmed) is used as is.
// Otherwise the name is derived with SanitizeDatabaseName, and that database is used
// or created. The resolved name is returned. A blank candidate fails with
// ErrInvalidDatabaseName; calling EnsureDatabase a second time fails with
// ErrAlreadyResolved.
func (w *SQLWriter) EnsureDatabase(ctx context.Context, candidate string) (string, error) {
	w.ensureMu.Lock()
	defer w.ensureMu.Unlock()

	if w.resolved.Load() != nil {
		return "", ErrAlreadyResolved
	}
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return "", ErrInvalidDatabaseName
	}

	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, w.opts.ConnectTimeout)
	defer cancel()

	name, created, err := w.resolveName(ctx, candidate)
	if err != nil {
		err = classify(err)
		w.observeOperation("ensure_database", candidate, time.Since(start), err, 0, nil)
		return "", err
	}

	db, err := connect(ctx, w.target.dialect, w.target.dsn(name, w.opts.ConnectTimeout), w.opts)
	if err != nil {
		w.observeOperation("ensure_database", name, time.Since(start), err, 0, nil)
		return "", err
	}

	for _, stmt := range schemaFor(w.target.dialect) {
		if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
			closeDB(db)
			err = fmt.Errorf("failed to create schema in %q: %w", name, classify(err))
			w.observeOperation("ensure_database", name, time.Since(start), err, 0, nil)
			return "", err
		}
	}

	if old := w.client.Swap(db); old != nil {
		closeDB(old)
	}
	w.resolved.Store(&name)

	w.observeOperation("ensure_database", name, time.Since(start), nil, 0, map[string]interface{}{
		"created": created,
		"dialect": string(w.target.dialect),
	})
	w.logInfo(ctx, "Resolved trace database", map[string]interface{}{
		"database": name,
		"created":  created,
		"dialect":  string(w.target.dialect),
	})
	return name, nil
}

// resolveName looks candidate up in the server catalog, then its sanitized form, and
// creates the sanitized database when neither exists. It reports whether the database
// was created by this call.
func (w *SQLWriter) resolveName(ctx context.Context, candidate string) (string, bool, error) {
	exists, err := w.databaseExists(ctx, candidate)
	if err != nil || exists {
		return candidate, false, err
	}

	name := SanitizeDatabaseName(candidate)
	if name != candidate {
		if exists, err = w.databaseExists(ctx, name); err != nil || exists {
			return name, false, err
		}
	}

	if err := w.DB().WithContext(ctx).Exec(createDatabaseSQL(w.target.dialect, name)).Error; err != nil {
		if isDuplicateDatabase(err) {
			return name, false, nil
		}
		return "", false, fmt.Errorf("failed to create database %q: %w", name, err)
	}
	return name, true, nil
}

func (w *SQLWriter) databaseExists(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := w.DB().WithContext(ctx).Raw(databaseExistsSQL(w.target.dialect), name).Scan(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check database existence: %w", err)
	}
	return count > 0, nil
}

// WithObserver attaches an observer notified of every store operation.
// This method uses the builder pattern and returns the writer for method chaining.
func (w *SQLWriter) WithObserver(observer observability.Observer) *SQLWriter {
	w.observer = observer
	return w
}

// WithLogger attaches a logger for lifecycle messages.
// This method uses the builder pattern and returns the writer for method chaining.
func (w *SQLWriter) WithLogger(logger Logger) *SQLWriter {
	w.logger = logger
	return w
}

// DB returns the current GORM handle.
func (w *SQLWriter) DB() *gorm.DB {
	return w.client.Load()
}

// Dialect reports the SQL flavour of the target server.
func (w *SQLWriter) Dialect() Dialect {
	return w.target.dialect
}

// DatabaseName returns the resolved database name, or "" before EnsureDatabase.
func (w *SQLWriter) DatabaseName() string {
	if name := w.resolved.Load(); name != nil {
		return *name
	}
	return ""
}

// Close closes the connection pool.
func (w *SQLWriter) Close() error {
	db := w.DB()
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func (w *SQLWriter) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if w.logger != nil {
		w.logger.InfoWithContext(ctx, msg, nil, fields)
	}
}

func (w *SQLWriter) logError(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if w.logger != nil {
		w.logger.ErrorWithContext(ctx, msg, err, fields)
	}
}
