package bootstrap

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sheetkit/gridengine/internal/config"
	"github.com/sheetkit/gridengine/internal/handler"
	"github.com/sheetkit/gridengine/internal/logger"
	"github.com/sheetkit/gridengine/internal/service"
)

type App struct {
	Echo *echo.Echo
}

func NewApp() *App {
	return &App{
		Echo: echo.New(),
	}
}

func (a *App) Initialize(ctx context.Context) error {
	// Load environment configuration
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}

	// Initialize logging
	logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	exportCfg, err := config.LoadExportConfig(config.DefaultEnvConfig.EXPORT_CONFIG_PATH)
	if err != nil {
		return fmt.Errorf("failed to load export config: %w", err)
	}

	// Initialize dependencies
	sheetSvc := service.NewSheetService(exportCfg)
	sheetHandler := handler.NewSheetHandler(sheetSvc)

	// Register Middlewares
	a.RegisterMiddlewares()

	// Register Routes
	a.RegisterRoutes(sheetHandler)

	return nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
}

func (a *App) RegisterRoutes(sheetHandler *handler.SheetHandler) {
	a.Echo.POST("/sheets", sheetHandler.CreateHandler)
	a.Echo.GET("/sheets/:id", sheetHandler.GetHandler)
	a.Echo.DELETE("/sheets/:id", sheetHandler.DeleteHandler)

	a.Echo.GET("/sheets/:id/cells/:address", sheetHandler.GetCellHandler)
	a.Echo.PUT("/sheets/:id/cells/:address", sheetHandler.SetCellHandler)

	a.Echo.POST("/sheets/:id/rows", sheetHandler.InsertRowHandler)
	a.Echo.DELETE("/sheets/:id/rows/:index", sheetHandler.RemoveRowHandler)
	a.Echo.POST("/sheets/:id/columns", sheetHandler.InsertColumnHandler)
	a.Echo.DELETE("/sheets/:id/columns/:index", sheetHandler.RemoveColumnHandler)

	styleGroup := a.Echo.Group("/sheets/:id/styles")
	styleGroup.PUT("/default", sheetHandler.SetDefaultStyleHandler)
	styleGroup.PUT("/rows/:index", sheetHandler.SetRowStyleHandler)
	styleGroup.PUT("/columns/:index", sheetHandler.SetColumnStyleHandler)
	styleGroup.PUT("/cells/:address", sheetHandler.SetCellStyleHandler)
	styleGroup.GET("/effective/:address", sheetHandler.EffectiveStyleHandler)

	a.Echo.POST("/sheets/:id/merges", sheetHandler.AddMergesHandler)

	a.Echo.GET("/sheets/:id/export", sheetHandler.ExportHandler)
	a.Echo.POST("/sheets/:id/import", sheetHandler.ImportHandler)
	a.Echo.GET("/sheets/:id/download", sheetHandler.DownloadHandler)
}

func (a *App) Run() error {
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}
