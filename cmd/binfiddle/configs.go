package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/binfiddle/binfiddle/render"
)

type MainConfig struct {
	Input       string `cli:"name=i aliases=input desc='input file, - for stdin'"`
	InFile      bool   `cli:"name=in-file desc='write changes back to the input file'"`
	InputFormat string `cli:"name=input-format desc='input format: hex, dec, oct, bin, ascii'"`
	Format      string `cli:"name=format aliases=f desc='display format: hex, dec, oct, bin, ascii'"`
	Silent      bool   `cli:"name=silent desc='suppress change reporting'"`
	ChunkSize   int    `cli:"name=chunk-size desc='display chunk size in bits'"`
	Width       int    `cli:"name=width desc='chunks per output line'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) loadInput() ([]byte, error) {
	if cfg.Input == "" || cfg.Input == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(cfg.Input)
}

// writeResult routes a mutated buffer to -in-file or -o; with neither set
// the data is dropped and a warning goes to stderr.
func (cfg *MainConfig) writeResult(cc *cli.Context, data []byte) error {
	switch {
	case cfg.InFile:
		if cfg.Input == "" || cfg.Input == "-" {
			return fmt.Errorf("%w: -in-file requires -i with a file path", cli.ErrUsage)
		}
		return os.WriteFile(cfg.Input, data, 0644)
	case cfg.Out != "":
		_, err := cc.Out.Write(data)
		return err
	default:
		if !cfg.Silent {
			fmt.Fprintln(os.Stderr, "Warning: changes were made but no output specified")
			fmt.Fprintln(os.Stderr, "Use -in-file to modify the input file or -o to write elsewhere")
		}
		return nil
	}
}

// colorsFor resolves an always/auto/never color mode against w.
func colorsFor(mode string, w io.Writer) (*render.Colors, error) {
	switch mode {
	case "always":
		color.NoColor = false
		return render.NewColors(), nil
	case "never":
		return nil, nil
	case "", "auto":
		if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			return render.NewColors(), nil
		}
		return nil, nil
	}
	return nil, fmt.Errorf("%w: color must be always, auto, or never, got %q", cli.ErrUsage, mode)
}

type ReadConfig struct {
	*MainConfig
	Read *cli.Command
}

type WriteConfig struct {
	*MainConfig
	Write *cli.Command
}

type EditConfig struct {
	*MainConfig
	Edit *cli.Command
}

type SearchConfig struct {
	*MainConfig
	All         bool   `cli:"name=all desc='find all matches'"`
	Count       bool   `cli:"name=count desc='print only the match count'"`
	OffsetsOnly bool   `cli:"name=offsets-only desc='print only match offsets'"`
	Context     int    `cli:"name=context desc='bytes of context around each match'"`
	NoOverlap   bool   `cli:"name=no-overlap desc='skip overlapping matches'"`
	Color       string `cli:"name=color desc='color output: always, auto, never'"`

	Search *cli.Command
}

type AnalyzeConfig struct {
	*MainConfig
	BlockSize    int    `cli:"name=block-size desc='block size, 0 analyzes the whole input'"`
	OutputFormat string `cli:"name=output-format desc='output format: human, csv, json'"`
	Range        string `cli:"name=range desc='range to analyze, start..end'"`

	Analyze *cli.Command
}

type DiffConfig struct {
	*MainConfig
	DiffFormat    string `cli:"name=diff-format desc='simple, unified, side-by-side, patch, summary, auto'"`
	Context       int    `cli:"name=context desc='context bytes around differences'"`
	Color         string `cli:"name=color desc='color output: always, auto, never'"`
	IgnoreOffsets string `cli:"name=ignore-offsets desc='ranges to skip, e.g. 0x0..0x10,0x100..0x200'"`
	DiffWidth     int    `cli:"name=diff-width desc='bytes per output line'"`
	Summary       bool   `cli:"name=summary desc='append a summary line'"`

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Backup string `cli:"name=backup desc='write a backup with this suffix before patching'"`
	DryRun bool   `cli:"name=dry-run desc='validate without writing'"`
	Revert bool   `cli:"name=r aliases=revert desc='apply the patch in reverse'"`

	Patch *cli.Command
}

type ConvertConfig struct {
	*MainConfig
	From     string `cli:"name=from desc='source encoding: utf-8, utf-16le, utf-16be, latin-1, windows-1252'"`
	To       string `cli:"name=to desc='target encoding'"`
	Newlines string `cli:"name=newlines desc='line endings: unix, windows, mac, keep'"`
	BOM      string `cli:"name=bom desc='BOM handling: add, remove, keep'"`
	OnError  string `cli:"name=on-error desc='decode errors: strict, replace, ignore'"`

	Convert *cli.Command
}

type StructConfig struct {
	*MainConfig
	Get          string `cli:"name=get desc='comma separated field names to extract'"`
	ListFields   bool   `cli:"name=list-fields desc='list template fields and exit'"`
	StructFormat string `cli:"name=struct-format desc='output format: human, json, yaml'"`

	Struct *cli.Command
}

func (cfg *MainConfig) displayFormat() string {
	if cfg.Format == "" {
		return "hex"
	}
	return cfg.Format
}

func (cfg *MainConfig) inputFormat() string {
	if cfg.InputFormat == "" {
		return "hex"
	}
	return cfg.InputFormat
}

func (cfg *MainConfig) chunkSize() int {
	if cfg.ChunkSize <= 0 {
		return 8
	}
	return cfg.ChunkSize
}
