package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{ChunkSize: 8, Width: 16}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Aliases:     []string{"output"},
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "binfiddle").
		WithSynopsis("binfiddle [opts] command [opts]").
		WithDescription("binfiddle is a tool for inspecting and manipulating binary data.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return bfMain(cfg, cc, args)
		}).
		WithSubs(
			ReadCommand(cfg),
			WriteCommand(cfg),
			EditCommand(cfg),
			SearchCommand(cfg),
			AnalyzeCommand(cfg),
			DiffCommand(cfg),
			PatchCommand(cfg),
			ConvertCommand(cfg),
			StructCommand(cfg))
}

func ReadCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ReadConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Read, "read").
		WithAliases("r").
		WithSynopsis("read <range>").
		WithDescription("read a byte range and display it").
		WithRun(func(cc *cli.Context, args []string) error {
			return readCmd(cfg, cc, args)
		})
}

func WriteCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &WriteConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Write, "write").
		WithAliases("w").
		WithSynopsis("write <position> <value>").
		WithDescription("overwrite bytes at a position").
		WithRun(func(cc *cli.Context, args []string) error {
			return writeCmd(cfg, cc, args)
		})
}

func EditCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EditConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Edit, "edit").
		WithAliases("e").
		WithSynopsis("edit insert|remove|replace <range> [data]").
		WithDescription("insert, remove, or replace a byte range").
		WithRun(func(cc *cli.Context, args []string) error {
			return editCmd(cfg, cc, args)
		})
}

func SearchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SearchConfig{MainConfig: mainCfg, Color: "auto"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Search, "search").
		WithAliases("s").
		WithSynopsis("search [opts] <pattern>").
		WithDescription("search for exact, regex, or mask patterns").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return searchCmd(cfg, cc, args)
		})
}

func AnalyzeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &AnalyzeConfig{MainConfig: mainCfg, BlockSize: 256, OutputFormat: "human"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Analyze, "analyze").
		WithAliases("a", "an").
		WithSynopsis("analyze entropy|histogram|ic [opts]").
		WithDescription("statistical analysis of binary data").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return analyzeCmd(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{
		MainConfig: mainCfg,
		DiffFormat: "auto",
		Context:    3,
		Color:      "auto",
		DiffWidth:  16,
	}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d", "di").
		WithSynopsis("diff [opts] <old> <new>").
		WithDescription("compare two binary files byte by byte").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diffCmd(cfg, cc, args)
		})
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Patch, "patch").
		WithAliases("p", "pa").
		WithSynopsis("patch [opts] <target> <patch-file>").
		WithDescription("apply a patch file to a target, all entries or none").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patchCmd(cfg, cc, args)
		})
}

func ConvertCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ConvertConfig{
		MainConfig: mainCfg,
		From:       "utf-8",
		To:         "utf-8",
		Newlines:   "keep",
		BOM:        "keep",
		OnError:    "replace",
	}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Convert, "convert").
		WithAliases("c", "co").
		WithSynopsis("convert [opts]").
		WithDescription("convert text encoding, line endings, and BOMs").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return convertCmd(cfg, cc, args)
		})
}

func StructCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &StructConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Struct, "struct").
		WithAliases("st").
		WithSynopsis("struct [opts] <template.yaml>").
		WithDescription("parse binary data against a structure template").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return structCmd(cfg, cc, args)
		})
}
