package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/binfiddle/binfiddle"
	"github.com/binfiddle/binfiddle/display"
	"github.com/binfiddle/binfiddle/parseutil"
)

func readCmd(cfg *ReadConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Read.Parse(cc, args)
	if err != nil {
		cfg.Read.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: read requires one range argument, got %d", cli.ErrUsage, len(args))
	}
	data, err := cfg.loadInput()
	if err != nil {
		return err
	}
	buf := binfiddle.NewBuffer(data)
	start, end, err := parseutil.ParseRange(args[0], buf.Len())
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	chunk, err := buf.ReadRange(start, end)
	if err != nil {
		return err
	}
	out, err := display.Bytes(chunk, cfg.displayFormat(), cfg.chunkSize(), cfg.Width)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cc.Out, out)
	return err
}
