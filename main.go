package main

import (
	"time"

	"github.com/shulehub/forum/config"
	"github.com/shulehub/forum/datasource"
	"github.com/shulehub/forum/models"
	"github.com/shulehub/forum/routes"
	"github.com/shulehub/forum/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	// Optional MySQL for page view recording; nil disables the recorder
	db := config.InitDatabase(&models.PageView{})

	// Single bounded fetch of the post collection; falls back to the
	// built-in dataset on any failure. Never retried within a process.
	loader := datasource.NewLoader(
		cfg.PostsAPIBase,
		cfg.PostsFetchLimit,
		time.Duration(cfg.FetchTimeoutMS)*time.Millisecond,
	)
	loader.Start()

	r := routes.SetupRouter(loader, db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
