package routes

import (
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/any-hub/modhost/internal/server"
)

// RegisterFileRoutes 暴露 /modules/:id/* ，直接从模块代码单元中读取文件。
func RegisterFileRoutes(app *fiber.App, deps Deps) {
	if app == nil || !deps.valid() {
		return
	}

	app.Get("/modules/:id/*", func(c fiber.Ctx) error {
		moduleID := strings.TrimSpace(c.Params("id"))
		fileName := c.Params("*")

		ok, err := deps.Cache.IsModule(deps.Environment, moduleID)
		if err != nil {
			return renderModuleError(c, deps.Logger, moduleID, err)
		}
		if !ok {
			return renderModuleNotFound(c)
		}
		// 缺失的文件只查索引，不写入句柄缓存。
		idx, err := deps.Cache.ResourceIndexFor(moduleID)
		if err != nil {
			return renderModuleError(c, deps.Logger, moduleID, err)
		}
		if !idx.File(fileName).Exists() {
			return renderFileNotFound(c)
		}

		handle, err := deps.Cache.ModuleFile(deps.Environment, moduleID, fileName)
		if err != nil {
			return renderModuleError(c, deps.Logger, moduleID, err)
		}
		if handle == nil || !handle.Exists() {
			return renderFileNotFound(c)
		}

		f, err := handle.Open()
		if err != nil {
			return renderModuleError(c, deps.Logger, moduleID, err)
		}
		defer f.Close()

		setContentType(c, handle.Name())
		if modTime := handle.ModTime(); !modTime.IsZero() {
			c.Set(fiber.HeaderLastModified, modTime.UTC().Format(http.TimeFormat))
		}
		c.Status(fiber.StatusOK)

		if _, err := io.Copy(c.Response().BodyWriter(), f); err != nil {
			deps.Logger.WithFields(logrus.Fields{
				"action":     "serve_file",
				"module":     moduleID,
				"file":       handle.Name(),
				"request_id": server.RequestID(c),
			}).Warn(err.Error())
			return err
		}
		return nil
	})
}

func renderFileNotFound(c fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "file_not_found"})
}

func setContentType(c fiber.Ctx, name string) {
	ext := path.Ext(name)
	if ext == "" {
		c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
		return
	}
	c.Type(ext)
}
