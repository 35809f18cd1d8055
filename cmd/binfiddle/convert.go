package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/binfiddle/binfiddle/convert"
)

func convertCmd(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		cfg.Convert.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: convert takes no arguments, got %d", cli.ErrUsage, len(args))
	}
	from, err := convert.ParseEncoding(cfg.From)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	to, err := convert.ParseEncoding(cfg.To)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	newlines, err := convert.ParseNewlineMode(cfg.Newlines)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	bom, err := convert.ParseBOMMode(cfg.BOM)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	onError, err := convert.ParseErrorMode(cfg.OnError)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}

	data, err := cfg.loadInput()
	if err != nil {
		return err
	}
	converted, err := convert.Convert(data,
		convert.From(from),
		convert.To(to),
		convert.Newlines(newlines),
		convert.BOM(bom),
		convert.OnError(onError))
	if err != nil {
		return err
	}

	if cfg.InFile {
		if cfg.Input == "" || cfg.Input == "-" {
			return fmt.Errorf("%w: -in-file requires -i with a file path", cli.ErrUsage)
		}
		return os.WriteFile(cfg.Input, converted, 0644)
	}
	_, err = cc.Out.Write(converted)
	return err
}
