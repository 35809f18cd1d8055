package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/binfiddle/binfiddle/analyze"
	"github.com/binfiddle/binfiddle/parseutil"
)

func analyzeCmd(cfg *AnalyzeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Analyze.Parse(cc, args)
	if err != nil {
		cfg.Analyze.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: analyze requires an analysis type: entropy, histogram, or ic", cli.ErrUsage)
	}
	kind, err := analyze.ParseKind(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	out, err := analyze.ParseOutput(cfg.OutputFormat)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	data, err := cfg.loadInput()
	if err != nil {
		return err
	}
	if cfg.Range != "" {
		start, end, err := parseutil.ParseRange(cfg.Range, len(data))
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		data = data[start:end]
	}

	var s string
	switch kind {
	case analyze.KindEntropy:
		s, err = analyze.FormatEntropy(analyze.BlockEntropy(data, cfg.BlockSize), cfg.BlockSize, out)
	case analyze.KindIC:
		s, err = analyze.FormatIC(analyze.BlockIC(data, cfg.BlockSize), cfg.BlockSize, out)
	case analyze.KindHistogram:
		s, err = analyze.FormatHistogram(analyze.Histogram(data), len(data), out)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cc.Out, s)
	return err
}
