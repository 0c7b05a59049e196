package model

import (
	"time"

	"gorm.io/gorm"
)

// WorkshopItem 代表一个创意工坊条目
type WorkshopItem struct {
	gorm.Model
	WorkshopID  string    `json:"workshop_id" gorm:"uniqueIndex"` // publishedfileid
	Title       string    `json:"title"`                          // 原始标题
	BaseTitle   string    `json:"base_title" gorm:"index"`        // 去掉装饰标签后的标题
	TimeUpdated time.Time `json:"time_updated"`                   // 工坊侧的更新时间
	LocalPath   string    `json:"local_path"`                     // 本地模组目录 (可选)
	Tracked     bool      `json:"tracked"`                        // 是否参与定时同步
}

// GlobalConfig 存储运行时状态 (如上次同步时间)
type GlobalConfig struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

const (
	ConfigKeyLastSync = "last_sync"
)
