// Package app contains the application setup for invctl.
package app

import (
	"io"
	"log/slog"

	"github.com/invsys/invctl/internal/config"
	"github.com/invsys/invctl/internal/service"
	"github.com/invsys/invctl/internal/store"
	"github.com/invsys/invctl/internal/transport/cli"
)

// Dependencies holds the wired application components.
type Dependencies struct {
	Service service.InventoryService
	Logger  *slog.Logger
}

// SetupDependencies wires the store and service.
func SetupDependencies(logger *slog.Logger) *Dependencies {
	svc := service.NewService(store.NewInventory(), logger)
	return &Dependencies{
		Service: svc,
		Logger:  logger,
	}
}

// SetupMenu creates the interactive menu session on the given streams.
func SetupMenu(deps *Dependencies, cfg *config.Config, in io.Reader, out io.Writer) *cli.Menu {
	return cli.NewMenu(deps.Service, in, out, deps.Logger, cfg.Inventory.File)
}
