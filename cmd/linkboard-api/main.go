package main

import (
	"flag"
	"fmt"
	"net/http"

	"github.com/linkboard-dev/linkboard/internal/config"
	"github.com/linkboard-dev/linkboard/internal/logger"
	"github.com/linkboard-dev/linkboard/internal/router"
	"github.com/linkboard-dev/linkboard/internal/setup"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("failed to set up dependencies", "error", err)
		return
	}
	defer deps.Storage.Cleanup()

	r := router.New(deps)

	port := cfg.Env.Port
	if port == "" {
		port = fmt.Sprintf("%d", cfg.Public.ServerPort)
	}

	logger.Log.Info("server started", "port", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Log.Error("server stopped", "error", err)
	}
}
