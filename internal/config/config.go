package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Title    TitleConfig    `mapstructure:"title"`
	Workshop WorkshopConfig `mapstructure:"workshop"`
	Sync     SyncConfig     `mapstructure:"sync"`
	Library  LibraryConfig  `mapstructure:"library"`
}

type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug or release
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// TitleConfig 在内置噪声词典之外追加条目
type TitleConfig struct {
	ExtraPhrases  []string `mapstructure:"extra_phrases"`
	ExtraPatterns []string `mapstructure:"extra_patterns"`
}

type WorkshopConfig struct {
	APIURL  string        `mapstructure:"api_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Proxy   string        `mapstructure:"proxy"`
}

type SyncConfig struct {
	Interval time.Duration `mapstructure:"interval"`
	Workers  int           `mapstructure:"workers"`
}

// LibraryConfig 本地模组目录, Dir 为空时不做重命名
type LibraryConfig struct {
	Dir  string `mapstructure:"dir"`
	Mode string `mapstructure:"mode"` // link, move or copy
}

var AppConfig *Config

func LoadConfig(configPath string) error {
	v := viper.New()

	// 默认值
	v.SetDefault("server.port", 8306)
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.path", "data/workshop.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("title.extra_phrases", []string{})
	v.SetDefault("title.extra_patterns", []string{})
	v.SetDefault("workshop.api_url", "https://api.steampowered.com")
	v.SetDefault("workshop.timeout", "10s")
	v.SetDefault("workshop.proxy", "")
	v.SetDefault("sync.interval", "6h")
	v.SetDefault("sync.workers", 8)
	v.SetDefault("library.dir", "")
	v.SetDefault("library.mode", "move")

	// 配置文件路径
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}

	// 环境变量替换 (使用 WORKSHOP_ 前缀)
	// 比如 WORKSHOP_SERVER_PORT=9090
	v.SetEnvPrefix("WORKSHOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay, use defaults
		log.Println("Config file not found, using defaults")
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Sync.Workers < 1 {
		cfg.Sync.Workers = 1
	}

	AppConfig = cfg
	return nil
}

// Debugf 只在 log.level=debug 时输出
func Debugf(format string, args ...interface{}) {
	if AppConfig == nil || !strings.EqualFold(AppConfig.Log.Level, "debug") {
		return
	}
	log.Printf("[debug] "+format, args...)
}
