package gdb

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config 数据库配置 (MySQL)
type Config struct {
	User            string `toml:"user" mapstructure:"user" json:"user"`
	Password        string `toml:"password" mapstructure:"password" json:"password"`
	Host            string `toml:"host" mapstructure:"host" json:"host"`
	Port            int    `toml:"port" mapstructure:"port" json:"port"`
	Database        string `toml:"database" mapstructure:"database" json:"database"`
	MaxIdleConns    int    `toml:"max_idle_conns" mapstructure:"max_idle_conns" json:"max_idle_conns"`
	MaxOpenConns    int    `toml:"max_open_conns" mapstructure:"max_open_conns" json:"max_open_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" mapstructure:"conn_max_lifetime" json:"conn_max_lifetime"` // 单位: 秒
	LogLevel        string `toml:"log_level" mapstructure:"log_level" json:"log_level"`                         // silent / error / warn / info
}

// NewDB 初始化 GORM 数据库连接
// 处理逻辑:
// 1. 拼接 MySQL DSN
// 2. 打开 gorm 连接, 设置日志级别
// 3. 配置底层连接池参数
func NewDB(c *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.Database)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(parseLogLevel(c.LogLevel)),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed on open database connection")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed on get underlying sql.DB")
	}
	if c.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetime) * time.Second)
	}

	return db, nil
}

func parseLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
