package db

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"neevamind/internal/auth"
	"neevamind/internal/diary"
	"neevamind/internal/insight"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens a postgres database for postgres:// DSNs and an SQLite
// database for sqlite:// or file: DSNs.
func Connect(dsn string) (*gorm.DB, error) {
	dialector, isSQLite, err := dialectorFor(dsn)
	if err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(
			slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, err
	}

	if isSQLite {
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, err
		}
		// one connection keeps :memory: databases shared and avoids "database is locked"
		sqlDB.SetMaxOpenConns(1)
	}
	return gdb, nil
}

func dialectorFor(dsn string) (gorm.Dialector, bool, error) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return postgres.Open(dsn), false, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		path := strings.TrimPrefix(dsn, "sqlite://")
		if path == "" {
			return nil, false, fmt.Errorf("sqlite dsn without path: %q", dsn)
		}
		if path != ":memory:" && !strings.Contains(path, "?") {
			path += "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
		}
		return sqlite.Open(path), true, nil
	case strings.HasPrefix(dsn, "file:"), dsn == ":memory:":
		return sqlite.Open(dsn), true, nil
	case strings.Contains(dsn, "host="):
		// key=value postgres DSN
		return postgres.Open(dsn), false, nil
	default:
		return nil, false, fmt.Errorf("unsupported database url %q", dsn)
	}
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&auth.User{},
		&diary.Entry{},
		&insight.Insight{},
	); err != nil {
		return err
	}

	stmts := []string{
		`create index if not exists idx_entries_user_created on diary_entries(user_id, created_at desc);`,
		`create index if not exists idx_insights_user_created on insights(user_id, created_at desc);`,
		`create index if not exists idx_insights_batch on insights(batch_id);`,
	}
	if gdb.Dialector.Name() == "postgres" {
		// tag filter (GIN for text[])
		stmts = append(stmts, `create index if not exists idx_entries_tags on diary_entries using gin (tags);`)
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}

// OpenMemory returns a migrated in-memory SQLite database.
func OpenMemory() (*gorm.DB, error) {
	gdb, err := Connect("sqlite://:memory:")
	if err != nil {
		return nil, err
	}
	if err := AutoMigrateAndIndexes(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}
