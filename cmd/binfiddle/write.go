package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/binfiddle/binfiddle"
	"github.com/binfiddle/binfiddle/parseutil"
)

func writeCmd(cfg *WriteConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Write.Parse(cc, args)
	if err != nil {
		cfg.Write.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: write requires a position and a value, got %d args", cli.ErrUsage, len(args))
	}
	pos, err := parseutil.ParseNumber(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	value, err := parseutil.ParseInput(args[1], cfg.inputFormat())
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	data, err := cfg.loadInput()
	if err != nil {
		return err
	}
	buf := binfiddle.NewBuffer(data)
	prev, err := buf.ReadRange(pos, pos+len(value))
	if err != nil {
		return err
	}
	if err := buf.WriteRange(pos, value); err != nil {
		return err
	}
	if !cfg.Silent {
		fmt.Fprintf(os.Stdout, "Previous: %x\n", prev)
		fmt.Fprintf(os.Stdout, "New:      %x\n", value)
	}
	return cfg.writeResult(cc, buf.Bytes())
}
