// Package main repaints a car model without opening a window: it loads a
// glTF/GLB file, enhances its materials, resolves the body paint, applies
// the color and writes the result as GLB.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/Faultbox/carviewer/internal/assets"
	"github.com/Faultbox/carviewer/internal/config"
	"github.com/Faultbox/carviewer/internal/logger"
	"github.com/Faultbox/carviewer/internal/viewer"
)

var flagOut = flag.String("out", "", "Output .glb path (default <model>_<color>.glb)")

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	out := *flagOut
	if out == "" {
		out = defaultOutput(cfg.Viewer.ModelPath, cfg.Viewer.DefaultColor)
	}
	if err := run(cfg, out, os.Stdout); err != nil {
		logger.Error("repaint failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, out string, w io.Writer) error {
	a, err := assets.Load(cfg.Viewer.ModelPath)
	if err != nil {
		return err
	}

	// Load applies the configured color to the resolved body.
	s := viewer.NewSession(viewer.OptionsFromConfig(cfg))
	report := s.Load(a.Model, a.Clips)
	if s.Color() == "" {
		return fmt.Errorf("invalid color %q", cfg.Viewer.DefaultColor)
	}

	if err := a.Save(out); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NODE\tMATERIAL\tCATEGORY")
	for _, e := range report.Materials {
		name := e.Material
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Node, name, e.Category)
	}
	tw.Flush()
	fmt.Fprintf(w, "\nbody: %d material(s) via %s, color %s\n", report.BodyCount, report.Tier, s.Color())
	fmt.Fprintf(w, "clips: %d\nwrote %s\n", report.Clips, out)
	return nil
}

func defaultOutput(model, color string) string {
	base := strings.TrimSuffix(model, filepath.Ext(model))
	return fmt.Sprintf("%s_%s.glb", base, strings.TrimPrefix(color, "#"))
}
