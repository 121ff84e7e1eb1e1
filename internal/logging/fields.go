package logging

import "github.com/sirupsen/logrus"

// BaseFields 构建 action + 配置路径等基础字段，便于不同入口复用。
func BaseFields(action, configPath string) logrus.Fields {
	return logrus.Fields{
		"action":     action,
		"configPath": configPath,
	}
}

// RequestFields 提供请求 ID、模块与文件字段，供 HTTP 访问日志复用。
func RequestFields(requestID, method, path string, status int) logrus.Fields {
	return logrus.Fields{
		"request_id": requestID,
		"method":     method,
		"path":       path,
		"status":     status,
	}
}

// UnitFields 描述针对单个代码单元的缓存动作。
func UnitFields(action, unit string) logrus.Fields {
	return logrus.Fields{
		"action": action,
		"unit":   unit,
	}
}

// ManifestFields 描述清单读取，scope 为应用名或模块标识。
func ManifestFields(scope, manifest string) logrus.Fields {
	return logrus.Fields{
		"action":   "read_manifest",
		"scope":    scope,
		"manifest": manifest,
	}
}
