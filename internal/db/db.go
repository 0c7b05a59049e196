package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/pokerjest/workshopTitleTool/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Open 打开 sqlite 并自动迁移, 支持 ":memory:"
func Open(storagePath string) (*gorm.DB, error) {
	if storagePath != ":memory:" {
		// 确保存储目录存在
		dir := filepath.Dir(storagePath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}

	conn, err := gorm.Open(sqlite.Open(storagePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	// in-memory 数据库每个连接都是独立的
	if storagePath == ":memory:" {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}

	// 自动迁移模式
	if err := conn.AutoMigrate(&model.WorkshopItem{}, &model.GlobalConfig{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return conn, nil
}

// InitDB 初始化全局 DB
func InitDB(storagePath string) error {
	conn, err := Open(storagePath)
	if err != nil {
		return err
	}
	DB = conn
	return nil
}

func CloseDB() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
