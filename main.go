package main

import (
	"context"

	"github.com/sheetkit/gridengine/internal/bootstrap"
	"github.com/sheetkit/gridengine/internal/logger"
)

func main() {
	ctx := context.Background()

	app := bootstrap.NewApp()
	if err := app.Initialize(ctx); err != nil {
		panic(err)
	}

	logger.InfoLog(ctx, "Grid engine listening")
	if err := app.Run(); err != nil {
		logger.ErrorLog(ctx, "Server stopped: %v", err)
	}
}
