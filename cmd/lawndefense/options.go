// cmd/lawndefense/options.go
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/opd-ai/go-lawndefense/pkg/config"
)

// options holds the parsed command line.
type options struct {
	configPath  string
	writeConfig bool
	preset      string
	renderer    string
	seed        uint64
	ticks       int
	width       int
	height      int
	fullscreen  bool
	logPath     string

	// set records which flags appeared on the command line.
	set map[string]bool
}

func parseOptions(args []string, output io.Writer) (*options, error) {
	fs := flag.NewFlagSet("lawndefense", flag.ContinueOnError)
	fs.SetOutput(output)

	opts := &options{set: make(map[string]bool)}
	fs.StringVar(&opts.configPath, "config", "config.json", "Path to configuration file")
	fs.BoolVar(&opts.writeConfig, "write-config", false, "Write the default configuration to -config and exit")
	fs.StringVar(&opts.preset, "preset", "", "Difficulty preset applied on top of the configuration")
	fs.StringVar(&opts.renderer, "renderer", config.RendererTerminal, "Frontend: 'terminal', 'engo' or 'headless'")
	fs.Uint64Var(&opts.seed, "seed", 0, "Random seed (0 picks one)")
	fs.IntVar(&opts.ticks, "ticks", 0, "Headless only: auto-start and stop after this many ticks")
	fs.IntVar(&opts.width, "width", 1200, "Window width (engo only)")
	fs.IntVar(&opts.height, "height", 800, "Window height (engo only)")
	fs.BoolVar(&opts.fullscreen, "fullscreen", false, "Run in fullscreen mode (engo only)")
	fs.StringVar(&opts.logPath, "log", "", "Append text logs to this file instead of stderr (the terminal frontend discards them otherwise)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	if opts.ticks < 0 {
		return nil, fmt.Errorf("-ticks must not be negative, got %d", opts.ticks)
	}
	return opts, nil
}

// loadConfig reads the configuration file, falling back to the defaults when
// it does not exist, then layers the environment and flags on top. A -preset
// flag is applied after LAWN_PRESET and the other environment values.
func (o *options) loadConfig() (*config.GameConfig, error) {
	path := o.configPath
	if _, err := os.Stat(path); os.IsNotExist(err) {
		path = ""
	}
	cfg, err := config.LoadConfigWithPreset(path, "")
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnvironmentOverrides(cfg); err != nil {
		return nil, err
	}
	if o.preset != "" {
		if err := config.ApplyPreset(cfg, o.preset); err != nil {
			return nil, err
		}
	}
	o.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// apply overrides cfg with the flags given explicitly.
func (o *options) apply(cfg *config.GameConfig) {
	if o.set["renderer"] {
		cfg.Frontend.Renderer = o.renderer
	}
	if o.set["seed"] {
		cfg.Seed = o.seed
	}
	if o.set["width"] {
		cfg.Frontend.Width = o.width
	}
	if o.set["height"] {
		cfg.Frontend.Height = o.height
	}
	if o.set["fullscreen"] {
		cfg.Frontend.Fullscreen = o.fullscreen
	}
	if o.set["ticks"] && !o.set["renderer"] {
		cfg.Frontend.Renderer = config.RendererHeadless
	}
}
