package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"image-management-server/internal/config"
	"image-management-server/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB() {
	var err error
	cfg := config.Get()
	var dialector gorm.Dialector

	switch cfg.Database.Type {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.Name,
		)
		if cfg.Database.SSL {
			dsn += "&tls=true"
		}
		dialector = mysql.Open(dsn)
	case "postgres":
		sslMode := "disable"
		if cfg.Database.SSL {
			sslMode = "require"
		}
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			cfg.Database.Host,
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.Name,
			cfg.Database.Port,
			sslMode,
		)
		dialector = postgres.Open(dsn)
	case "sqlite":
		fallthrough
	default:
		// 自动创建数据库目录
		dbDir := filepath.Dir(cfg.Database.Filename)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			log.Fatal().Err(err).Str("dir", dbDir).Msg("❌ 无法创建数据库目录")
		}
		dialector = sqlite.Open(SQLiteDSN(cfg.Database.Filename))
	}

	gormLogLevel := logger.Warn
	if cfg.Server.Mode == "debug" {
		gormLogLevel = logger.Info
	}
	DB, err = gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(gormLogLevel)})
	if err != nil {
		log.Fatal().Err(err).Msg("❌ 数据库连接失败")
	}

	// 获取底层 sql.DB 以配置连接池
	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("❌ 无法获取 sql.DB")
	}

	// 配置连接池
	if DB.Dialector.Name() == "sqlite" {
		// SQLite 建议单连接写
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		// MySQL/PostgreSQL 可以支持更高并发
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetMaxIdleConns(10)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(DB); err != nil {
		log.Fatal().Err(err).Msg("❌ 数据库迁移失败")
	}

	log.Info().Str("type", DB.Dialector.Name()).Msg("✅ 数据库连接成功，表结构已同步")
}

// SQLiteDSN 为文件或内存库追加外键、WAL 与繁忙等待参数
func SQLiteDSN(name string) string {
	sep := "?"
	for i := 0; i < len(name); i++ {
		if name[i] == '?' {
			sep = "&"
			break
		}
	}
	return name + sep + "_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
}

// Migrate 同步表结构并补建每个归属方至多一张主图的唯一索引
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&model.Customer{},
		&model.Lead{},
		&model.ProfileImage{},
	); err != nil {
		return err
	}
	return EnsureMainImageIndexes(gdb)
}

// EnsureMainImageIndexes 在支持部分索引的方言上创建 (owner) WHERE is_main_image 的唯一索引。
// MySQL 不支持部分索引，此时依赖事务内的先清后设与归属方锁。
func EnsureMainImageIndexes(gdb *gorm.DB) error {
	var trueLiteral string
	switch gdb.Dialector.Name() {
	case "sqlite":
		trueLiteral = "1"
	case "postgres":
		trueLiteral = "true"
	default:
		return nil
	}
	stmts := []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS uix_profile_images_customer_main ON profile_images (customer_id) WHERE is_main_image = " + trueLiteral + " AND customer_id IS NOT NULL",
		"CREATE UNIQUE INDEX IF NOT EXISTS uix_profile_images_lead_main ON profile_images (lead_id) WHERE is_main_image = " + trueLiteral + " AND lead_id IS NOT NULL",
	}
	for _, stmt := range stmts {
		if err := gdb.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create main image index: %w", err)
		}
	}
	return nil
}
