// Command studioctl drives the template pipeline from the shell:
// validate template documents, render them to PNG, check site bundles,
// and split multi-page documents into files.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	studio "github.com/sitesmith/studio"
	"github.com/sitesmith/studio/assets"
	"github.com/sitesmith/studio/bundle"
	"github.com/sitesmith/studio/config"
	"github.com/sitesmith/studio/pages"
	"github.com/sitesmith/studio/render"
	"github.com/sitesmith/studio/scene/ggcanvas"
	"github.com/sitesmith/studio/schema"
)

const usage = `usage: studioctl <command> [flags]

commands:
  validate <template.json>        validate and print the normalized document
  render   <template.json>        render the first frame to PNG
  bundle   check <bundle-file>    validate a site bundle (json or snapshot)
  split    <document>             split a multi-page document into files
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "validate":
		err = runValidate(os.Args[2:])
	case "render":
		err = runRender(os.Args[2:])
	case "bundle":
		err = runBundle(os.Args[2:])
	case "split":
		err = runSplit(os.Args[2:])
	case "-h", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "studioctl: unknown command %q\n%s", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "studioctl: %v\n", err)
		os.Exit(1)
	}
}

// commonFlags registers the flags shared by every subcommand and
// returns the loaded config once parsed.
func commonFlags(fs *flag.FlagSet) func() config.Config {
	cfgPath := fs.String("config", "", "path to a YAML config file")
	verbose := fs.BoolP("verbose", "v", false, "log pipeline progress to stderr")
	debug := fs.Bool("debug", false, "enable debug logging")

	return func() config.Config {
		cfg := config.Default()
		if *cfgPath != "" {
			loaded, err := config.Load(*cfgPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "studioctl: %v\n", err)
				os.Exit(1)
			}
			cfg = loaded
		}
		if *debug {
			cfg.Debug = true
		}
		if *verbose || cfg.Debug {
			level := slog.LevelInfo
			if cfg.Debug {
				level = slog.LevelDebug
			}
			studio.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		}
		return cfg
	}
}

func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	loadCfg := commonFlags(fs)
	fs.Parse(args)
	loadCfg()

	if fs.NArg() != 1 {
		return fmt.Errorf("validate: expected one template file, got %d", fs.NArg())
	}
	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	doc, err := schema.ValidateJSON(data)
	if err != nil {
		return fmt.Errorf("validate %s: %w", fs.Arg(0), err)
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	loadCfg := commonFlags(fs)
	outPath := fs.StringP("out", "o", "out.png", "output PNG path")
	width := fs.Float64("width", 0, "override the frame width")
	height := fs.Float64("height", 0, "override the frame height")
	fs.Parse(args)
	cfg := loadCfg()

	if fs.NArg() != 1 {
		return fmt.Errorf("render: expected one template file, got %d", fs.NArg())
	}
	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	fonts := assets.NewFontRegistry()
	for _, dir := range cfg.FontDirs {
		if err := fonts.LoadDir(dir); err != nil {
			studio.Logger().Warn("font dir skipped", "dir", dir, "error", err)
		}
	}
	pre := assets.NewPreloader(
		assets.WithTimeout(cfg.PreloadTimeout),
		assets.WithRetryPolicy(cfg.Retry.Policy()),
		assets.WithFontRegistry(fonts),
		assets.WithDebug(cfg.Debug),
	)

	canvas := ggcanvas.New(schema.DefaultFrameWidth, schema.DefaultFrameHeight, ggcanvas.WithFonts(fonts))
	r := render.NewRenderer(canvas,
		render.WithPreloader(pre),
		render.WithDebug(cfg.Debug),
	)

	if doc, err := schema.ValidateJSON(data); err != nil {
		// The canvas paints the error state; still write it out.
		r.RenderError(err)
		studio.Logger().Warn("invalid template, writing error surface", "error", err)
	} else {
		if *width > 0 {
			doc.Frames[0].Width = *width
		}
		if *height > 0 {
			doc.Frames[0].Height = *height
		}
		if err := r.RenderTemplate(context.Background(), doc); err != nil {
			studio.Logger().Warn("render failed, writing error surface", "error", err)
		}
	}

	f, err := os.Create(*outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := canvas.EncodePNG(f); err != nil {
		return fmt.Errorf("encode %s: %w", *outPath, err)
	}
	fmt.Printf("wrote %s\n", *outPath)
	return nil
}

func runBundle(args []string) error {
	if len(args) < 1 || args[0] != "check" {
		return fmt.Errorf("bundle: expected 'check' subcommand")
	}
	fs := flag.NewFlagSet("bundle check", flag.ExitOnError)
	loadCfg := commonFlags(fs)
	fs.Parse(args[1:])
	loadCfg()

	if fs.NArg() != 1 {
		return fmt.Errorf("bundle check: expected one bundle file, got %d", fs.NArg())
	}
	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	var b bundle.Bundle
	if fromSnap, err := bundle.FromSnapshot(data); err == nil {
		b = fromSnap
	} else if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("bundle check %s: not a snapshot or JSON bundle: %w", fs.Arg(0), err)
	}

	result, err := b.Validate()
	if err != nil {
		return err
	}
	for _, is := range result.Errors {
		fmt.Printf("error: %s\n", is)
	}
	for _, is := range result.Warnings {
		fmt.Printf("warning: %s\n", is)
	}
	if !result.Valid {
		return fmt.Errorf("bundle check: %d error(s)", len(result.Errors))
	}
	fmt.Printf("ok: %d page(s), %d asset(s), %d warning(s)\n",
		len(b.Pages), len(b.Assets), len(result.Warnings))
	return nil
}

func runSplit(args []string) error {
	fs := flag.NewFlagSet("split", flag.ExitOnError)
	loadCfg := commonFlags(fs)
	outDir := fs.StringP("dir", "d", "site", "output directory")
	fs.Parse(args)
	loadCfg()

	if fs.NArg() != 1 {
		return fmt.Errorf("split: expected one document file, got %d", fs.NArg())
	}
	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	split, err := pages.ParseMultiPage(string(data))
	if err != nil {
		return err
	}

	vfs := pages.GenerateVFS(split)
	for path, content := range vfs {
		dst := filepath.Join(*outDir, filepath.FromSlash(strings.TrimPrefix(path, "/")))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(dst, []byte(content), 0o644); err != nil {
			return err
		}
	}
	fmt.Printf("wrote %d file(s) to %s\n", len(vfs), *outDir)
	return nil
}
