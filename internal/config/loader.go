package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	defaultConfigPath      = "config.toml"
	defaultApplicationName = "ModHost"
)

// Load 读取并解析 TOML 配置文件，同时注入默认值与校验逻辑。
func Load(path string) (*Config, error) {
	if path == "" {
		path = defaultConfigPath
	}

	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置失败: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(durationDecodeHook())); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.UsesModulesPath() {
		absModules, err := filepath.Abs(cfg.ModulesPath)
		if err != nil {
			return nil, fmt.Errorf("无法解析模块目录: %w", err)
		}
		cfg.ModulesPath = absModules
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ListenPort", 5000)
	v.SetDefault("ApplicationName", defaultApplicationName)
	v.SetDefault("ModulesPath", "")
	v.SetDefault("LogLevel", "info")
	v.SetDefault("LogFilePath", "")
	v.SetDefault("LogMaxSize", 100)
	v.SetDefault("LogMaxBackups", 10)
	v.SetDefault("LogCompress", true)
	v.SetDefault("ReadTimeout", "30s")
	v.SetDefault("WriteTimeout", "30s")
	v.SetDefault("IdleTimeout", "60s")
}

func applyDefaults(c *Config) {
	if c.ListenPort == 0 {
		c.ListenPort = 5000
	}
	c.ApplicationName = strings.TrimSpace(c.ApplicationName)
	if c.ApplicationName == "" {
		c.ApplicationName = defaultApplicationName
	}
	c.ModulesPath = strings.TrimSpace(c.ModulesPath)
	if c.ReadTimeout.DurationValue() == 0 {
		c.ReadTimeout = Duration(30 * time.Second)
	}
	if c.WriteTimeout.DurationValue() == 0 {
		c.WriteTimeout = Duration(30 * time.Second)
	}
	if c.IdleTimeout.DurationValue() == 0 {
		c.IdleTimeout = Duration(60 * time.Second)
	}
}

func durationDecodeHook() mapstructure.DecodeHookFunc {
	targetType := reflect.TypeOf(Duration(0))

	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != targetType {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			var d Duration
			if err := d.UnmarshalText([]byte(v)); err != nil {
				return nil, fmt.Errorf("无法解析 Duration 字段: %w", err)
			}
			return d, nil
		case int:
			return Duration(time.Duration(v) * time.Second), nil
		case int64:
			return Duration(time.Duration(v) * time.Second), nil
		case float64:
			return Duration(time.Duration(v * float64(time.Second))), nil
		case time.Duration:
			return Duration(v), nil
		case Duration:
			return v, nil
		default:
			return nil, fmt.Errorf("不支持的 Duration 类型: %T", v)
		}
	}
}
