package routes

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/any-hub/modhost/internal/modcache"
	"github.com/any-hub/modhost/internal/server"
)

// Deps 汇总路由依赖：共享缓存、宿主环境与日志。
type Deps struct {
	Cache       *modcache.Cache
	Environment modcache.Environment
	Logger      *logrus.Logger
}

func (d Deps) valid() bool {
	return d.Cache != nil && d.Environment != nil && d.Logger != nil
}

// RegisterModuleRoutes 暴露 /-/modules 与 /-/cache 诊断接口，供运维查询模块与缓存状态。
func RegisterModuleRoutes(app *fiber.App, deps Deps) {
	if app == nil || !deps.valid() {
		return
	}

	app.Get("/-/modules", func(c fiber.Ctx) error {
		names, err := deps.Cache.ModuleNames(deps.Environment)
		if err != nil {
			return renderModuleError(c, deps.Logger, deps.Environment.ApplicationName(), err)
		}
		return c.JSON(fiber.Map{
			"application": deps.Environment.ApplicationName(),
			"modules":     names,
		})
	})

	app.Get("/-/modules/:id", func(c fiber.Ctx) error {
		moduleID := strings.TrimSpace(c.Params("id"))
		assets, found, err := moduleAssets(deps, moduleID)
		if err != nil {
			return renderModuleError(c, deps.Logger, moduleID, err)
		}
		if !found {
			return renderModuleNotFound(c)
		}
		return c.JSON(modulePayload{ID: moduleID, Assets: assets, AssetCount: len(assets)})
	})

	app.Get("/-/modules/:id/assets", func(c fiber.Ctx) error {
		moduleID := strings.TrimSpace(c.Params("id"))
		assets, found, err := moduleAssets(deps, moduleID)
		if err != nil {
			return renderModuleError(c, deps.Logger, moduleID, err)
		}
		if !found {
			return renderModuleNotFound(c)
		}
		return c.JSON(fiber.Map{"id": moduleID, "assets": assets})
	})

	app.Get("/-/cache", func(c fiber.Ctx) error {
		return c.JSON(deps.Cache.Stats())
	})
}

type modulePayload struct {
	ID         string   `json:"id"`
	Assets     []string `json:"assets"`
	AssetCount int      `json:"asset_count"`
}

// moduleAssets 在返回资源清单前先做成员校验，以区分“非模块”与“资源为空”。
func moduleAssets(deps Deps, moduleID string) ([]string, bool, error) {
	ok, err := deps.Cache.IsModule(deps.Environment, moduleID)
	if err != nil || !ok {
		return nil, false, err
	}
	assets, err := deps.Cache.ModuleAssets(deps.Environment, moduleID)
	if err != nil {
		return nil, true, err
	}
	return assets, true, nil
}

func renderModuleNotFound(c fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "module_not_found"})
}

func renderModuleError(c fiber.Ctx, logger *logrus.Logger, moduleID string, err error) error {
	logger.WithFields(logrus.Fields{
		"action":     "module_query",
		"module":     moduleID,
		"request_id": server.RequestID(c),
	}).Warn(err.Error())
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "module_error"})
}
