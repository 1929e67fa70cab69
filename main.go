package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"deviceprofile/config"
	"deviceprofile/device"
	"deviceprofile/flags"
	"deviceprofile/grid"
	"deviceprofile/inspect"
	"deviceprofile/log"
	"deviceprofile/profile"
)

var version = "0.3.1"

// options holds the persistent flags shared by every command.
type options struct {
	verbose     bool
	grid        string
	device      string
	gridFile    string
	devicesFile string
	flags       map[string]string
	hideDock    bool
	textScale   float64
	window      string
}

// env is the config with command line overrides applied and its files
// loaded.
type env struct {
	cfg     *config.Config
	grids   []*grid.Spec
	devices []device.Preset
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "deviceprofile",
		Short:         "deviceprofile - Resolve launcher layouts for a device and grid.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := log.Initialize(o.verbose); err != nil {
				return err
			}
			log.InitDebug()
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			log.GetProfiler().LogStats()
			log.CloseDebug()
			log.Close()
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "Log info messages to stderr")
	pf.StringVarP(&o.grid, "grid", "g", "", "Grid to build (defaults to the configured grid)")
	pf.StringVarP(&o.device, "device", "d", "", "Device preset to build for (defaults to the configured device)")
	pf.StringVar(&o.gridFile, "grid-file", "", "YAML file of extra grids")
	pf.StringVar(&o.devicesFile, "devices-file", "", "YAML file of extra device presets")
	pf.StringToStringVar(&o.flags, "flag", nil, "Toggle overrides, e.g. --flag responsive_grid=false")
	pf.BoolVar(&o.hideDock, "hide-dock", false, "Build without the dock")
	pf.Float64Var(&o.textScale, "text-scale", 0, "Text size multiplier (0 keeps the configured value)")
	pf.StringVarP(&o.window, "window", "w", "", "Build for a WIDTHxHEIGHT window of the device, e.g. 1080x1200")

	root.AddCommand(
		newBuildCmd(o),
		newMatrixCmd(o),
		newInspectCmd(o),
		newWatchCmd(o),
		newGridsCmd(o),
		newDebugCmd(o),
		newVersionCmd(),
	)
	return root
}

// loadEnv loads the config and applies the command line overrides to it.
func loadEnv(cmd *cobra.Command, o *options) (*env, error) {
	cfg := config.LoadConfig()
	if o.gridFile != "" {
		cfg.GridFile = o.gridFile
	}
	if o.devicesFile != "" {
		cfg.DevicesFile = o.devicesFile
	}
	if cmd.Flags().Changed("hide-dock") {
		cfg.Preferences.HideDock = o.hideDock
	}
	if o.textScale < 0 {
		return nil, fmt.Errorf("text scale cannot be negative")
	}
	if o.textScale > 0 {
		cfg.Preferences.TextSizeMultiplier = o.textScale
	}
	overrides, err := parseFlags(o.flags)
	if err != nil {
		return nil, err
	}
	if len(overrides) > 0 {
		merged := make(map[string]bool, len(cfg.Flags)+len(overrides))
		for k, v := range cfg.Flags {
			merged[k] = v
		}
		for k, v := range overrides {
			merged[k] = v
		}
		cfg.Flags = merged
	}

	grids, err := cfg.Grids()
	if err != nil {
		return nil, err
	}
	devices, err := cfg.Devices()
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, grids: grids, devices: devices}, nil
}

// parseFlags turns name=bool pairs into toggle values. Unknown toggle names
// are rejected.
func parseFlags(raw map[string]string) (map[string]bool, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	known := make(map[string]bool)
	for _, name := range flags.Names() {
		known[name] = true
	}
	out := make(map[string]bool, len(raw))
	for name, value := range raw {
		if !known[name] {
			return nil, fmt.Errorf("unknown flag %q (known: %s)", name, strings.Join(flags.Names(), ", "))
		}
		v, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("flag %s: %w", name, err)
		}
		out[name] = v
	}
	return out, nil
}

// parseWindow parses a WIDTHxHEIGHT window size.
func parseWindow(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid window %q: want WIDTHxHEIGHT", s)
	}
	w, err := strconv.Atoi(strings.TrimSpace(ws))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid window width %q: %w", ws, err)
	}
	h, err := strconv.Atoi(strings.TrimSpace(hs))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid window height %q: %w", hs, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid window %q: sizes must be positive", s)
	}
	return w, h, nil
}

// inputs resolves the named device and grid, falling back to the config
// defaults for empty names.
func (e *env) inputs(deviceName, gridName string) (profile.Inputs, error) {
	if deviceName == "" {
		deviceName = e.cfg.DefaultDevice
	}
	if gridName == "" {
		gridName = e.cfg.DefaultGrid
	}
	preset, ok := device.Lookup(e.devices, deviceName)
	if !ok {
		return profile.Inputs{}, fmt.Errorf("unknown device %q", deviceName)
	}
	spec, ok := grid.Lookup(e.grids, gridName)
	if !ok {
		return profile.Inputs{}, fmt.Errorf("unknown grid %q", gridName)
	}
	return profile.Inputs{
		Metrics:     preset.Metrics,
		Grid:        spec,
		Preferences: e.cfg.Preferences,
		Flags:       e.cfg.FlagProvider(),
	}, nil
}

// build builds the profile for the selected device and grid, then narrows
// it to the requested window.
func (e *env) build(o *options) (*profile.Profile, error) {
	in, err := e.inputs(o.device, o.grid)
	if err != nil {
		return nil, err
	}
	p, err := profile.New(in)
	if err != nil {
		return nil, err
	}
	if o.window == "" {
		return p, nil
	}
	w, h, err := parseWindow(o.window)
	if err != nil {
		return nil, err
	}
	return p.MultiWindowVariant(w, h)
}

func newDebugCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, o)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			configJson, _ := json.MarshalIndent(e.cfg, "", "  ")
			fmt.Fprintf(out, "Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configJson)

			flagsJson, _ := json.MarshalIndent(flags.Snapshot(e.cfg.FlagProvider()), "", "  ")
			fmt.Fprintf(out, "Flags:\n%s\n", flagsJson)

			if dir := inspect.Dir(); dir != "" {
				fmt.Fprintf(out, "Inspect dir: %s\n", dir)
			}
			if log.DebugEnabled {
				fmt.Fprintf(out, "Debug log: %s\n", log.DebugLogPath())
				if _, err := e.build(o); err != nil {
					return err
				}
				fmt.Fprint(out, log.GetProfiler().GetStats())
			} else {
				fmt.Fprintln(out, "Debug log: disabled (set DP_DEBUG=1)")
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of deviceprofile",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "deviceprofile version %s\n", version)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
