package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Validate 针对语义级别做进一步校验，防止非法配置启动服务。
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("配置为空")
	}

	if c.ListenPort <= 0 || c.ListenPort > 65535 {
		return newFieldError("ListenPort", "必须在 1-65535")
	}
	if err := validateApplicationName(c.ApplicationName); err != nil {
		return newFieldError("ApplicationName", err.Error())
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return newFieldError("LogLevel", fmt.Sprintf("无法识别的日志级别: %s", c.LogLevel))
	}
	if c.LogMaxSize < 0 {
		return newFieldError("LogMaxSize", "不能为负数")
	}
	if c.LogMaxBackups < 0 {
		return newFieldError("LogMaxBackups", "不能为负数")
	}
	if c.ReadTimeout.DurationValue() < 0 {
		return newFieldError("ReadTimeout", "不能为负数")
	}
	if c.WriteTimeout.DurationValue() < 0 {
		return newFieldError("WriteTimeout", "不能为负数")
	}
	if c.IdleTimeout.DurationValue() < 0 {
		return newFieldError("IdleTimeout", "不能为负数")
	}

	if c.UsesModulesPath() {
		info, err := os.Stat(c.ModulesPath)
		if err != nil {
			return newFieldError("ModulesPath", fmt.Sprintf("无法访问: %v", err))
		}
		if !info.IsDir() {
			return newFieldError("ModulesPath", "必须是目录")
		}
	}

	return nil
}

func validateApplicationName(name string) error {
	if name == "" {
		return errors.New("不能为空")
	}
	if strings.ContainsAny(name, " \t/\\") {
		return errors.New("不允许包含空白或路径分隔符")
	}
	return nil
}
