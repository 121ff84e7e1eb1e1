package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration 提供更灵活的反序列化能力，同时兼容纯秒整数与 Go Duration 字符串。
type Duration time.Duration

// UnmarshalText 使 Viper 可以识别诸如 "30s"、"5m" 或纯数字秒值等配置写法。
func (d *Duration) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))
	if raw == "" {
		*d = Duration(0)
		return nil
	}

	if parsed, err := time.ParseDuration(raw); err == nil {
		*d = Duration(parsed)
		return nil
	}

	if intVal, err := parseInt(raw); err == nil {
		*d = Duration(time.Duration(intVal) * time.Second)
		return nil
	}

	if seconds, err := strconv.ParseFloat(raw, 64); err == nil {
		*d = Duration(time.Duration(seconds * float64(time.Second)))
		return nil
	}

	return fmt.Errorf("invalid duration value: %s", raw)
}

// DurationValue 返回真实的 time.Duration，便于调用方计算。
func (d Duration) DurationValue() time.Duration {
	return time.Duration(d)
}

// parseInt 支持十进制或 0x 前缀的十六进制字符串解析。
func parseInt(value string) (int64, error) {
	if strings.HasPrefix(value, "0x") || strings.HasPrefix(value, "0X") {
		return strconv.ParseInt(value, 0, 64)
	}
	return strconv.ParseInt(value, 10, 64)
}

// Config 是 TOML 文件映射的整体结构。
type Config struct {
	ListenPort      int    `mapstructure:"ListenPort"`
	ApplicationName string `mapstructure:"ApplicationName"`
	// ModulesPath 为空时仅使用内嵌注册的代码单元。
	ModulesPath string `mapstructure:"ModulesPath"`

	LogLevel      string `mapstructure:"LogLevel"`
	LogFilePath   string `mapstructure:"LogFilePath"`
	LogMaxSize    int    `mapstructure:"LogMaxSize"`
	LogMaxBackups int    `mapstructure:"LogMaxBackups"`
	LogCompress   bool   `mapstructure:"LogCompress"`

	ReadTimeout  Duration `mapstructure:"ReadTimeout"`
	WriteTimeout Duration `mapstructure:"WriteTimeout"`
	IdleTimeout  Duration `mapstructure:"IdleTimeout"`
}

// UsesModulesPath 表示是否启用磁盘代码单元目录。
func (c Config) UsesModulesPath() bool {
	return strings.TrimSpace(c.ModulesPath) != ""
}

// LogTarget 输出 `stdout` 或日志文件路径，供启动日志使用。
func (c Config) LogTarget() string {
	if c.LogFilePath == "" {
		return "stdout"
	}
	return c.LogFilePath
}
