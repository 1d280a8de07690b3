// Package app wires configuration, the backend client, and the UI together.
package app

import (
	"context"
	"fmt"

	"github.com/ddanshin/wbscope/internal/catalog"
	"github.com/ddanshin/wbscope/internal/config"
	"github.com/ddanshin/wbscope/internal/prefs"
	"github.com/ddanshin/wbscope/internal/ui"
)

// Options configure the wbscope application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/wbscope/prefs.toml
	APIBase    string // overrides the config file when set
}

// Run boots the wbscope TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	apiBase := cfg.APIBase
	if opts.APIBase != "" {
		apiBase = opts.APIBase
	}

	client, err := catalog.NewClient(apiBase)
	if err != nil {
		return fmt.Errorf("init catalog client: %w", err)
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	return ui.Run(ui.Options{
		Context:    ctx,
		Client:     client,
		ParseLimit: cfg.ParseLimit,
		ThemeName:  userPrefs.Theme,
		PrefsPath:  opts.PrefsPath,
	})
}
