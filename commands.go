package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"deviceprofile/grid"
	"deviceprofile/inspect"
	"deviceprofile/log"
	"deviceprofile/profile"
	"deviceprofile/ui"
)

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// writeProfile prints p as JSON, a styled dump on terminals, or a plain dump.
func writeProfile(w io.Writer, p *profile.Profile, asJSON, plain, trace bool) error {
	switch {
	case asJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case !plain && isTerminal(w):
		out := ui.RenderDump(p)
		if trace {
			out += "\n" + ui.RenderTrace(p)
		}
		_, err := io.WriteString(w, out)
		return err
	default:
		if err := p.Dump(w); err != nil {
			return err
		}
		if trace {
			for i, s := range p.DockTrace {
				if _, err := fmt.Fprintf(w, "dock_step_%d: %s\n", i, s); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

func newBuildCmd(o *options) *cobra.Command {
	var asJSON, plain, trace bool
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a profile and print every resolved value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, o)
			if err != nil {
				return err
			}
			p, err := e.build(o)
			if err != nil {
				return err
			}
			if p.Degradation.IsDegraded() {
				log.InfoLog.Printf("profile %s degraded: %s", p.GridName, p.Degradation)
			}
			if err := inspect.WriteSnapshot(inspect.FromProfile(p)); err != nil {
				log.WarningLog.Printf("failed to write inspect snapshot: %v", err)
			}
			return writeProfile(cmd.OutOrStdout(), p, asJSON, plain, trace)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the profile as JSON")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print an unstyled dump even on a terminal")
	cmd.Flags().BoolVar(&trace, "trace", false, "Also print every dock fit iteration")
	return cmd
}

func newMatrixCmd(o *options) *cobra.Command {
	var jobs int
	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Build every device and grid combination and summarize the results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, o)
			if err != nil {
				return err
			}

			var (
				inputs []profile.Inputs
				names  []string
			)
			for _, d := range e.devices {
				if o.device != "" && d.Name != o.device {
					continue
				}
				for _, g := range e.grids {
					if o.grid != "" && g.Name != o.grid {
						continue
					}
					in, err := e.inputs(d.Name, g.Name)
					if err != nil {
						return err
					}
					inputs = append(inputs, in)
					names = append(names, d.Name)
				}
			}
			if len(inputs) == 0 {
				return fmt.Errorf("no device and grid matches the filters")
			}

			cache := profile.NewCache()
			rows := make([]ui.MatrixRow, len(inputs))
			ps, err := cache.BuildAll(cmd.Context(), inputs, jobs)
			if err != nil {
				// Retry one by one so each failure lands on its own row.
				// Builds that succeeded are served from the cache.
				log.WarningLog.Printf("matrix build failed: %v", err)
				for i, in := range inputs {
					p, err := cache.Get(in)
					rows[i] = ui.MatrixRow{Device: names[i], Profile: p, Err: err}
				}
			} else {
				for i, p := range ps {
					rows[i] = ui.MatrixRow{Device: names[i], Profile: p}
				}
			}
			stats := cache.Stats()
			log.InfoLog.Printf("matrix: %d builds, %d cache hits", stats.Misses, stats.Hits)

			_, err = io.WriteString(cmd.OutOrStdout(), ui.RenderMatrix(rows))
			return err
		},
	}
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "Maximum concurrent builds (0 means no limit)")
	return cmd
}

func newInspectCmd(o *options) *cobra.Command {
	var (
		outPath string
		text    bool
	)
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the region tree of a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, o)
			if err != nil {
				return err
			}
			p, err := e.build(o)
			if err != nil {
				return err
			}
			snap := inspect.FromProfile(p)
			if outPath != "" {
				if err := inspect.WriteSnapshotToPath(snap, outPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote snapshot to %s\n", outPath)
				return nil
			}
			if text {
				_, err := io.WriteString(cmd.OutOrStdout(), snap.ToText())
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(snap)
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the JSON snapshot to a file")
	cmd.Flags().BoolVar(&text, "text", false, "Print the snapshot as text")
	return cmd
}

// gridModes names the layout modes a grid declares.
func gridModes(s *grid.Spec) string {
	var modes []string
	if s.ResponsiveWidth {
		modes = append(modes, "responsive-width")
	}
	if s.ResponsiveHeight {
		modes = append(modes, "responsive-height")
	}
	if s.Scalable {
		modes = append(modes, "scalable")
	}
	if len(modes) == 0 {
		return "fixed"
	}
	return strings.Join(modes, ",")
}

// gridBreakpoints names the breakpoints a grid declares.
func gridBreakpoints(s *grid.Spec) string {
	var bps []string
	for _, bp := range []struct {
		bp       grid.Breakpoint
		declared bool
	}{
		{grid.BreakpointDefault, s.Default != nil},
		{grid.BreakpointLandscape, s.Landscape != nil},
		{grid.BreakpointTwoPanelPortrait, s.TwoPanelPortrait != nil},
		{grid.BreakpointTwoPanelLandscape, s.TwoPanelLandscape != nil},
	} {
		if bp.declared {
			bps = append(bps, bp.bp.String())
		}
	}
	return strings.Join(bps, ",")
}

func newGridsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "grids",
		Short: "List the available grids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, o)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, s := range e.grids {
				marker := " "
				if s.Name == e.cfg.DefaultGrid {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %-12s %dx%d  %-30s %s\n", marker, s.Name,
					s.Default.Columns, s.Default.Rows, gridModes(s), gridBreakpoints(s))
			}
			return nil
		},
	}
}
