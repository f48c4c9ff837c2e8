/*
A small driver that builds the configured meshes, watches the model assets
and prints mesh statistics until interrupted.
*/
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine"
	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/core"
)

func main() {
	configPath := flag.String("config", "lotus.toml", "path to the TOML configuration")
	flag.Parse()

	cfg, err := core.LoadConfig(*configPath)
	if errors.Is(err, os.ErrNotExist) {
		core.LogInfo("no configuration at '%s', using defaults.", *configPath)
		cfg = core.DefaultConfig()
	} else if err != nil {
		core.LogFatal("%s", err)
	}

	e, err := engine.New(cfg)
	if err != nil {
		core.LogFatal("%s", err)
	}

	// signal context to capture system calls
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	if err := e.Initialize(); err != nil {
		_ = e.Shutdown()
		core.LogFatal("%s", err)
	}

	if err := e.Run(ctx); err != nil {
		core.LogError("%s", err)
	}
	if err := e.Shutdown(); err != nil {
		core.LogFatal("%s", err)
	}
}
