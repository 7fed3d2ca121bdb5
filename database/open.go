package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	"github.com/sanketkurve/portfolio-backend/config"
	"github.com/sanketkurve/portfolio-backend/errs"
)

// Supported DB_TYPE values.
const (
	TypePostgres = "postgres"
	TypeSupabase = "supa"
	TypeSQLite   = "sqlite"
)

// Open connects to the store named by DB_TYPE and registers read replicas
// from DATABASE_REPLICA_URLS when set.
func Open(c map[string]string, logger zerolog.Logger) (*gorm.DB, error) {
	dbType := strings.ToLower(config.GetString(c, "DB_TYPE", TypePostgres))

	gormConfig := &gorm.Config{
		PrepareStmt: false,
		Logger: NewGormLogger(logger, GormLoggerConfig{
			SlowThreshold: config.GetDuration(c, "DB_SLOW_THRESHOLD", time.Second),
		}),
	}

	var dialector gorm.Dialector
	switch dbType {
	case TypePostgres:
		dsn := config.GetString(c, "DATABASE_URL", "")
		if dsn == "" {
			return nil, errs.NewEnvironmentVariableError("DATABASE_URL")
		}
		dialector = postgresDialector(dsn)
	case TypeSupabase:
		dialector = postgresDialector(supabaseDSN(c))
	case TypeSQLite:
		dialector = sqlite.Open(config.GetString(c, "SQLITE_PATH", "portfolio.db"))
	default:
		return nil, errs.NewConfigError("DB_TYPE", fmt.Errorf("unsupported database type %q", dbType))
	}

	logger.Info().Str("dbType", dbType).Msg("connecting to database")
	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if replicas := config.GetList(c, "DATABASE_REPLICA_URLS"); len(replicas) > 0 && dbType != TypeSQLite {
		dialectors := make([]gorm.Dialector, 0, len(replicas))
		for _, dsn := range replicas {
			dialectors = append(dialectors, postgresDialector(dsn))
		}
		if err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: dialectors,
			Policy:   dbresolver.RandomPolicy{},
		})); err != nil {
			return nil, fmt.Errorf("register read replicas: %w", err)
		}
		logger.Info().Int("replicas", len(replicas)).Msg("read replicas registered")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(config.GetInt(c, "DB_MAX_OPEN_CONNS", 10))
	sqlDB.SetMaxIdleConns(config.GetInt(c, "DB_MAX_IDLE_CONNS", 5))
	sqlDB.SetConnMaxLifetime(config.GetDuration(c, "DB_CONN_MAX_LIFETIME", 30*time.Minute))

	return db, nil
}

func postgresDialector(dsn string) gorm.Dialector {
	return postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	})
}

func supabaseDSN(c map[string]string) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
		config.GetString(c, "SUPABASE_DB_HOST", ""),
		config.GetString(c, "SUPABASE_DB_USER", ""),
		config.GetString(c, "SUPABASE_DB_PASSWORD", ""),
		config.GetString(c, "SUPABASE_DB_NAME", ""),
		config.GetString(c, "SUPABASE_DB_PORT", "5432"),
	)
}
