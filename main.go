package main

import (
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/config"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
)

func main() {
	cfg := config.NewConfig()
	entrypoint.Run(cfg, Version)
}
