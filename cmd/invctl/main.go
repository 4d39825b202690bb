// Package main implements invctl, a terminal inventory manager.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/invsys/invctl/internal/app"
	"github.com/invsys/invctl/internal/config"
	"github.com/invsys/invctl/pkg/bootstrap"
	"github.com/invsys/invctl/pkg/config/configloader"
)

const appName = "invctl"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("application run failed: %v", err)
		os.Exit(1)
	}
}

// run loads the configuration, wires the dependencies and drives the
// interactive menu until the session ends.
func run(ctx context.Context) error {
	cfg, cfgErr := configloader.Load[*config.Config](appName, config.Defaults())
	if cfgErr != nil {
		return fmt.Errorf("failed to load configuration: %w", cfgErr)
	}

	logger := bootstrap.NewLogger(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)
	logger.Debug("configuration loaded", "config", cfg.String())

	deps := app.SetupDependencies(logger)

	if cfg.Inventory.AutoLoad {
		if _, err := os.Stat(cfg.Inventory.File); err == nil {
			count, err := deps.Service.LoadFile(cfg.Inventory.File)
			if err != nil {
				return fmt.Errorf("failed to load inventory from %s: %w", cfg.Inventory.File, err)
			}
			fmt.Printf("Loaded %d products from %s\n", count, cfg.Inventory.File)
		}
	}

	menu := app.SetupMenu(deps, cfg, os.Stdin, os.Stdout)
	if err := menu.Run(ctx); err != nil {
		return fmt.Errorf("menu session failed: %w", err)
	}

	if cfg.Inventory.AutoSave {
		if err := deps.Service.SaveFile(cfg.Inventory.File); err != nil {
			return fmt.Errorf("failed to save inventory to %s: %w", cfg.Inventory.File, err)
		}
	}
	return nil
}
