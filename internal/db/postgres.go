package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mathfacts/backend/internal/logger"
	"github.com/mathfacts/backend/internal/types"
	"github.com/mathfacts/backend/internal/utils"
)

type PostgresService struct {
	DB  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	dbLog := log.With("component", "PostgresService")

	host := utils.GetEnv("POSTGRES_HOST", "localhost", dbLog)
	port := utils.GetEnv("POSTGRES_PORT", "5432", dbLog)
	user := utils.GetEnv("POSTGRES_USER", "postgres", dbLog)
	password := utils.GetEnv("POSTGRES_PASSWORD", "", dbLog)
	name := utils.GetEnv("POSTGRES_NAME", "mathfacts", dbLog)
	sslMode := utils.GetEnv("POSTGRES_SSL_MODE", "disable", dbLog)

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, name, sslMode,
	)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("getting raw sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(utils.GetEnvAsInt("POSTGRES_MAX_OPEN_CONNS", 20, dbLog))
	sqlDB.SetMaxIdleConns(utils.GetEnvAsInt("POSTGRES_MAX_IDLE_CONNS", 5, dbLog))
	sqlDB.SetConnMaxLifetime(time.Hour)

	dbLog.Info("Connected to postgres", "host", host, "db", name)
	return &PostgresService{DB: gormDB, log: dbLog}, nil
}

// AutoMigrateAll creates or updates every table the server depends on.
func (ps *PostgresService) AutoMigrateAll() error {
	return ps.DB.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Problem{},
		&types.Attempt{},
		&types.UserProblem{},
		&types.TestResult{},
	)
}

func (ps *PostgresService) Close() error {
	sqlDB, err := ps.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
