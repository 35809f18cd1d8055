package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/binfiddle/binfiddle"
	"github.com/binfiddle/binfiddle/parseutil"
	"github.com/binfiddle/binfiddle/render"
)

func diffCmd(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 files, got %d", cli.ErrUsage, len(args))
	}
	old, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	new, err := os.ReadFile(args[1])
	if err != nil {
		return err
	}
	mask, err := parseutil.ParseIgnoreRanges(cfg.IgnoreOffsets)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}

	spans := binfiddle.Diff(old, new, binfiddle.DiffIgnore(mask))
	if len(spans) == 0 {
		if !cfg.Silent {
			fmt.Fprintln(os.Stderr, "Files are identical")
		}
		return nil
	}

	diffBytes := render.DiffBytes(spans)
	var mode render.Mode
	if cfg.DiffFormat == "" || cfg.DiffFormat == "auto" {
		mode = render.AutoSelect(diffBytes, max(len(old), len(new)))
	} else {
		mode, err = render.ParseMode(cfg.DiffFormat)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	if diffBytes > 10000 && !cfg.Silent {
		percent := float64(diffBytes) / float64(max(len(old), len(new))) * 100
		fmt.Fprintf(os.Stderr, "Large diff: %d differing bytes (%.1f%% of file)\n", diffBytes, percent)
		if mode == render.ModeSimple {
			fmt.Fprintln(os.Stderr, "Output will be very large; consider -diff-format summary or unified")
		}
	}

	colors, err := colorsFor(cfg.Color, cc.Out)
	if err != nil {
		return err
	}
	err = render.Render(cc.Out, spans, old, new,
		render.WithMode(mode),
		render.WithContext(cfg.Context),
		render.WithWidth(cfg.DiffWidth),
		render.WithLabels(args[0], args[1]),
		render.WithColors(colors))
	if err != nil {
		return err
	}
	if cfg.Summary && mode != render.ModeSummary {
		fmt.Fprintln(cc.Out)
		fmt.Fprintln(cc.Out, render.Summary(spans, len(old), len(new)))
	}
	return nil
}
