package main

import (
	"flag"
	"os"

	"kestrel-sir/config"
	"kestrel-sir/core/appbootstrap"
	"kestrel-sir/core/utils"
)

func main() {
	configPath := flag.String("config", "", "path to yaml config (env-only when empty)")
	flag.Parse()

	logger := utils.NewLogger()
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Errorf("config: %v", err)
		os.Exit(1)
	}
	if err := appbootstrap.Run(cfg, logger); err != nil {
		logger.Errorf("run: %v", err)
		os.Exit(1)
	}
}
