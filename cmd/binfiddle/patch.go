package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/binfiddle/binfiddle"
	"github.com/binfiddle/binfiddle/patchfile"
)

func patchCmd(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: patch requires a target and a patch file, got %d args", cli.ErrUsage, len(args))
	}
	targetPath := args[0]
	target, err := os.ReadFile(targetPath)
	if err != nil {
		return err
	}
	patchData, err := os.ReadFile(args[1])
	if err != nil {
		return err
	}
	doc, err := patchfile.Parse(patchData)
	if err != nil {
		return err
	}

	outcome, patched, err := binfiddle.Apply(target, doc,
		binfiddle.ApplyRevert(cfg.Revert),
		binfiddle.ApplyDryRun(cfg.DryRun))
	if err != nil {
		return err
	}

	if !cfg.Silent {
		reportOutcome(cc, doc, outcome)
	}
	if !outcome.OK() {
		return cli.ExitCodeErr(1)
	}
	if cfg.DryRun {
		if !cfg.Silent {
			fmt.Fprintln(cc.Out, "Dry run, target not modified")
		}
		return nil
	}
	return writePatchResult(cfg, cc.Out, targetPath, target, patched)
}

// writePatchResult routes the patched buffer: -o redirects it and leaves
// the target untouched; otherwise the target is replaced in place, after
// a backup of the pre-patch bytes when -backup is set.
func writePatchResult(cfg *PatchConfig, out io.Writer, targetPath string, target, patched []byte) error {
	if cfg.Out != "" {
		_, err := out.Write(patched)
		return err
	}
	if cfg.Backup != "" {
		if err := os.WriteFile(targetPath+cfg.Backup, target, 0644); err != nil {
			return fmt.Errorf("error writing backup: %w", err)
		}
	}
	return os.WriteFile(targetPath, patched, 0644)
}

func reportOutcome(cc *cli.Context, doc *patchfile.Document, outcome *binfiddle.Outcome) {
	for i := range doc.Entries {
		e := &doc.Entries[i]
		if fail := outcome.FailedByIndex(i); fail != nil {
			fmt.Fprintf(cc.Out, "✗ 0x%08x: %s: %s\n", e.Offset, fail.Reason, fail.Detail)
			continue
		}
		fmt.Fprintf(cc.Out, "✓ 0x%08x\n", e.Offset)
	}
	fmt.Fprintf(cc.Out, "%d succeeded, %d failed\n", len(outcome.Succeeded), len(outcome.Failed))
}
