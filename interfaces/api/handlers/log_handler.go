package handlers

import (
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"heritage-archive/pkg/apperror"
	"heritage-archive/pkg/logger"
)

// LogHandler serves the application log files to admins.
type LogHandler struct{}

func NewLogHandler() *LogHandler {
	return &LogHandler{}
}

// GetLogs returns log entries
// @Summary Get application logs
// @Tags Admin
// @Security BearerAuth
// @Param lines query int false "Number of lines" default(100)
// @Param level query string false "Filter by level (DEBUG, INFO, WARN, ERROR)"
// @Param category query string false "Filter by category (auth, api, db, cache, moderation, family, websocket, startup, scheduler)"
// @Param search query string false "Search in message/action"
// @Param day query string false "Day to read, YYYY-MM-DD"
// @Success 200 {object} map[string]interface{}
// @Router /admin/logs [get]
func (h *LogHandler) GetLogs(c *fiber.Ctx) error {
	opts := logger.ReadLogsOptions{
		Lines:    c.QueryInt("lines", 100),
		Level:    logger.Level(c.Query("level")),
		Category: logger.Category(c.Query("category")),
		Search:   c.Query("search"),
		Day:      c.Query("day"),
	}

	entries, err := logger.ReadLogs(opts)
	if err != nil {
		return apperror.BadRequest(err.Error())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"entries": entries,
			"count":   len(entries),
			"filters": fiber.Map{
				"lines":    opts.Lines,
				"level":    opts.Level,
				"category": opts.Category,
				"search":   opts.Search,
				"day":      opts.Day,
			},
		},
	})
}

// GetLogFiles returns list of log files
// @Summary List log files
// @Tags Admin
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /admin/logs/files [get]
func (h *LogHandler) GetLogFiles(c *fiber.Ctx) error {
	files, err := logger.ListLogFiles()
	if err != nil {
		return apperror.Store("failed to list log files", err)
	}

	var totalSize int64
	for _, f := range files {
		if info, err := os.Stat(filepath.Join(logger.GetLogDir(), f)); err == nil {
			totalSize += info.Size()
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"files":            files,
			"total_size_bytes": totalSize,
		},
	})
}
