package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/binfiddle/binfiddle"
	"github.com/binfiddle/binfiddle/parseutil"
)

func editCmd(cfg *EditConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Edit.Parse(cc, args)
	if err != nil {
		cfg.Edit.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: edit requires an operation and a range", cli.ErrUsage)
	}
	op := args[0]
	data, err := cfg.loadInput()
	if err != nil {
		return err
	}
	buf := binfiddle.NewBuffer(data)
	start, end, err := parseutil.ParseRange(args[1], buf.Len())
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}

	switch op {
	case "insert":
		value, err := editValue(cfg, args, op)
		if err != nil {
			return err
		}
		if !cfg.Silent {
			fmt.Fprintf(os.Stdout, "Inserting %d bytes at position %d\n", len(value), start)
		}
		if err := buf.Insert(start, value); err != nil {
			return err
		}
	case "remove":
		if !cfg.Silent {
			prev, err := buf.ReadRange(start, end)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Removing %d bytes from position %d:\n", len(prev), start)
			fmt.Fprintf(os.Stdout, "Data removed: %x\n", prev)
		}
		if err := buf.RemoveRange(start, end); err != nil {
			return err
		}
	case "replace":
		value, err := editValue(cfg, args, op)
		if err != nil {
			return err
		}
		if !cfg.Silent {
			prev, err := buf.ReadRange(start, end)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Replacing %d bytes at position %d:\n", len(prev), start)
			fmt.Fprintf(os.Stdout, "Previous: %x\n", prev)
			fmt.Fprintf(os.Stdout, "New:      %x\n", value)
		}
		if err := buf.Replace(start, end, value); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: edit operation must be insert, remove, or replace, got %q", cli.ErrUsage, op)
	}
	return cfg.writeResult(cc, buf.Bytes())
}

func editValue(cfg *EditConfig, args []string, op string) ([]byte, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("%w: edit %s requires a data argument", cli.ErrUsage, op)
	}
	value, err := parseutil.ParseInput(args[2], cfg.inputFormat())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return value, nil
}
