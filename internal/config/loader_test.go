package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFailsWithMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatalf("缺失的配置文件应返回错误")
	}
}

func TestLoadRejectsInvalidDuration(t *testing.T) {
	cfg := `
ApplicationName = "ModHost"
ReadTimeout = "boom"
`
	path := writeTempConfig(t, cfg)
	if _, err := Load(path); err == nil {
		t.Fatalf("无效 Duration 应失败")
	}
}

func TestLoadResolvesModulesPath(t *testing.T) {
	dir := t.TempDir()
	path := writeTempConfig(t, "ModulesPath = \""+filepath.ToSlash(dir)+"\"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 返回错误: %v", err)
	}
	if !filepath.IsAbs(cfg.ModulesPath) {
		t.Fatalf("ModulesPath 应被转换为绝对路径，得到 %s", cfg.ModulesPath)
	}
	if cfg.ApplicationName != "ModHost" {
		t.Fatalf("ApplicationName 应使用默认值，得到 %s", cfg.ApplicationName)
	}
}

func TestLoadParsesDurationStrings(t *testing.T) {
	cfg := `
ReadTimeout = "0x10"
WriteTimeout = "1.5"
IdleTimeout = "2m"
`
	loaded, err := Load(writeTempConfig(t, cfg))
	if err != nil {
		t.Fatalf("Load 返回错误: %v", err)
	}
	if loaded.ReadTimeout.DurationValue() != 16*time.Second {
		t.Fatalf("十六进制秒值应被解析，得到 %v", loaded.ReadTimeout.DurationValue())
	}
	if loaded.WriteTimeout.DurationValue() != 1500*time.Millisecond {
		t.Fatalf("小数秒值应被解析，得到 %v", loaded.WriteTimeout.DurationValue())
	}
	if loaded.IdleTimeout.DurationValue() != 2*time.Minute {
		t.Fatalf("Duration 字符串应被解析，得到 %v", loaded.IdleTimeout.DurationValue())
	}
}
