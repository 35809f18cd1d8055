package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/binfiddle/binfiddle/structdef"
)

func structCmd(cfg *StructConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Struct.Parse(cc, args)
	if err != nil {
		cfg.Struct.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: struct requires one template file, got %d args", cli.ErrUsage, len(args))
	}
	tplData, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	tpl, err := structdef.ParseTemplate(tplData)
	if err != nil {
		return err
	}

	if cfg.ListFields {
		_, err = fmt.Fprint(cc.Out, structdef.ListFields(tpl))
		return err
	}

	out, err := structdef.ParseOutputFormat(cfg.StructFormat)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	data, err := cfg.loadInput()
	if err != nil {
		return err
	}

	var opts []structdef.ApplyOpt
	if cfg.Get != "" {
		names := strings.Split(cfg.Get, ",")
		for i := range names {
			names[i] = strings.TrimSpace(names[i])
		}
		opts = append(opts, structdef.Get(names...))
	}
	res, err := structdef.Apply(data, tpl, opts...)
	if err != nil {
		return err
	}
	s, err := structdef.Format(res, out)
	if err != nil {
		return err
	}
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	_, err = fmt.Fprint(cc.Out, s)
	return err
}
