package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yungbote/learnpath-backend/internal/domain"
	"github.com/yungbote/learnpath-backend/internal/platform/envutil"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

// Service owns the gorm handle for the ingestion store. Driver selection:
// sqlite by default (file path via DB_PATH), postgres when DB_DRIVER is
// "postgres" with the DSN in DATABASE_URL.
type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewService(log *logger.Logger) (*Service, error) {
	if log == nil {
		log = logger.NewNop()
	}
	driver := strings.ToLower(envutil.String("DB_DRIVER", "sqlite"))

	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dsn := envutil.String("DATABASE_URL", "")
		if dsn == "" {
			return nil, fmt.Errorf("db: DATABASE_URL required for postgres driver")
		}
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(envutil.String("DB_PATH", "learnpath.db"))
	default:
		return nil, fmt.Errorf("db: unknown driver %q", driver)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("db: open %s: %w", driver, err)
	}
	log.Info("database opened", "driver", driver)
	return &Service{db: gdb, log: log.With("service", "db")}, nil
}

func (s *Service) DB() *gorm.DB { return s.db }

// AutoMigrateAll creates or updates the ingestion tables.
func (s *Service) AutoMigrateAll() error {
	return s.db.AutoMigrate(
		&domain.LearningObjectRow{},
		&domain.PrerequisiteRow{},
	)
}
