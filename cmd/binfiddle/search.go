package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/binfiddle/binfiddle/display"
	"github.com/binfiddle/binfiddle/render"
	"github.com/binfiddle/binfiddle/search"
)

func searchCmd(cfg *SearchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Search.Parse(cc, args)
	if err != nil {
		cfg.Search.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: search requires one pattern argument, got %d", cli.ErrUsage, len(args))
	}
	pat, err := search.ParsePattern(args[0], cfg.inputFormat())
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	data, err := cfg.loadInput()
	if err != nil {
		return err
	}

	var opts []search.Opt
	if cfg.All {
		opts = append(opts, search.All())
	}
	if cfg.NoOverlap {
		opts = append(opts, search.NoOverlap())
	}
	matches, err := search.Find(data, pat, opts...)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		if !cfg.Silent {
			fmt.Fprintln(os.Stderr, "No matches found")
		}
		return nil
	}

	switch {
	case cfg.Count:
		fmt.Fprintln(cc.Out, len(matches))
		return nil
	case cfg.OffsetsOnly:
		for _, m := range matches {
			fmt.Fprintf(cc.Out, "0x%08x\n", m.Offset)
		}
		return nil
	}

	colors, err := colorsFor(cfg.Color, cc.Out)
	if err != nil {
		return err
	}
	for _, m := range matches {
		if cfg.Context > 0 {
			before := data[max(m.Offset-cfg.Context, 0):m.Offset]
			afterStart := min(m.Offset+len(m.Data), len(data))
			after := data[afterStart:min(afterStart+cfg.Context, len(data))]
			s, err := display.MatchContext(m.Offset, m.Data, before, after, cfg.displayFormat(), cfg.chunkSize())
			if err != nil {
				return err
			}
			fmt.Fprintln(cc.Out, s)
			continue
		}
		body, err := display.Bytes(m.Data, cfg.displayFormat(), cfg.chunkSize(), 0)
		if err != nil {
			return err
		}
		offset := colors.Color(render.OffsetColor, fmt.Sprintf("0x%08x", m.Offset))
		fmt.Fprintf(cc.Out, "%s: %s\n", offset, body)
	}
	return nil
}
