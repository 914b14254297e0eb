package model

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"payroll/internal/config"
	dbentity "payroll/internal/entity/db"
	"payroll/internal/model/sql"
	"payroll/internal/storage"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

const (
	DBTypeMySQL    = "mysql"
	DBTypeSQLite   = "sqlite"
	DBTypePostgres = "postgres"
)

// BackendFactory 根据存储类型创建对应的文档后端
type BackendFactory struct{}

// NewBackendFactory 创建新的后端工厂
func NewBackendFactory() *BackendFactory {
	return &BackendFactory{}
}

// InitRecordStore 初始化记录存储的辅助函数
func InitRecordStore(cfg *config.Config) (*RecordStore, error) {
	backend, err := NewBackendFactory().CreateBackend(cfg)
	if err != nil {
		return nil, err
	}
	return NewRecordStore(backend), nil
}

// CreateBackend 根据配置创建对应的后端实现
func (f *BackendFactory) CreateBackend(cfg *config.Config) (storage.Backend, error) {
	storeType := strings.ToLower(strings.TrimSpace(cfg.StoreType))
	if storage.IsBlobType(storeType) {
		return storage.NewStorage(*cfg)
	}

	switch storeType {
	case DBTypeMySQL:
		return f.createMySQLBackend(cfg)
	case DBTypeSQLite:
		return f.createSQLiteBackend(cfg)
	case DBTypePostgres:
		return f.createPostgresBackend(cfg)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", cfg.StoreType)
	}
}

// createMySQLBackend 创建 MySQL 后端
func (f *BackendFactory) createMySQLBackend(cfg *config.Config) (storage.Backend, error) {
	dsn := cfg.DSNURL
	if dsn == "" {
		// 从各个配置项构建 DSN
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser, cfg.DBPassword, cfg.DBAddr, cfg.DBPort, cfg.DBName)
	}

	db, err := f.openGormDB(mysql.Open(dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	if err := f.migrateSchema(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return sql.NewGormRepository(db), nil
}

// createSQLiteBackend 创建 SQLite 后端
func (f *BackendFactory) createSQLiteBackend(cfg *config.Config) (storage.Backend, error) {
	filePath := cfg.DBPath
	if filePath == "" {
		filePath = "data/payroll.db"
	}

	// SQLite 会在连接时自动创建 .db 文件，但前提是目录已存在
	if dir := filepath.Dir(filePath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	}

	db, err := f.openGormDB(sqlite.Open(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite: %w", err)
	}

	if err := f.migrateSchema(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return sql.NewGormRepository(db), nil
}

// createPostgresBackend 创建 PostgreSQL 后端
func (f *BackendFactory) createPostgresBackend(cfg *config.Config) (storage.Backend, error) {
	dsn := cfg.DSNURL
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			cfg.DBAddr, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
	}

	db, err := f.openGormDB(postgres.Open(dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	if err := f.migrateSchema(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return sql.NewGormRepository(db), nil
}

func (f *BackendFactory) openGormDB(dialector gorm.Dialector) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(log.Writer(), "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second * 5,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, err
	}

	// 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// migrateSchema 迁移数据库表结构
func (f *BackendFactory) migrateSchema(db *gorm.DB) error {
	return db.AutoMigrate(&dbentity.Document{})
}
