// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ssair/internal/checker"
	"ssair/internal/cfg"
	"ssair/internal/dot"
	"ssair/internal/domtree"
	"ssair/internal/ir"
	"ssair/internal/loader"
	"ssair/internal/printer"
)

var (
	dotDir    string
	noDot     bool
	checkOnly bool
	verbose   bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ssair <file.ir>",
		Short: "Load, check, and print a generic-opcode SSA IR module",
		Args:  cobra.ExactArgs(1),
		RunE:  runSSAIR,
	}

	cmd.Flags().StringVar(&dotDir, "dot-dir", ".", "directory to write cfg_<fun>.dot/dom_<fun>.dot files into")
	cmd.Flags().BoolVar(&noDot, "no-dot", false, "skip writing dot files")
	cmd.Flags().BoolVar(&checkOnly, "check-only", false, "validate the module and exit without printing it")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func runSSAIR(cmd *cobra.Command, args []string) (err error) {
	logger, syncErr := newLogger()
	if syncErr != nil {
		return syncErr
	}
	defer logger.Sync()

	defer func() {
		if r := recover(); r != nil {
			fault, ok := r.(*ir.Fault)
			if !ok {
				panic(r)
			}
			color.Red("✗ %s", fault.Error())
			logger.Error("aborted", zap.String("op", fault.Op), zap.String("msg", fault.Msg))
			err = fault
		}
	}()

	path := args[0]
	logger.Debug("loading module", zap.String("path", path))

	f, openErr := os.Open(path)
	if openErr != nil {
		return fmt.Errorf("failed to open %s: %w", path, openErr)
	}
	defer f.Close()

	ctx := ir.NewContext()
	if loadErr := loader.LoadReader(ctx, f); loadErr != nil {
		color.Red("✗ syntax error in %s: %s", path, loadErr)
		return loadErr
	}

	checker.Check(ctx)
	color.Green("✓ %s is well-formed", path)

	if checkOnly {
		return nil
	}

	fmt.Print(printer.Print(ctx))

	if !noDot {
		if err := writeDotFiles(ctx, logger); err != nil {
			return err
		}
	}

	return nil
}

func writeDotFiles(ctx *ir.Context, logger *zap.Logger) error {
	if mkErr := os.MkdirAll(dotDir, 0o755); mkErr != nil {
		return fmt.Errorf("failed to create dot output directory: %w", mkErr)
	}

	for _, fun := range ctx.Funcs() {
		if ctx.FuncIsDecl(fun) {
			continue
		}
		name := ctx.ValueName(fun.Value())

		g := cfg.Build(ctx, fun)
		if err := writeDotFile(fmt.Sprintf("%s/cfg_%s.dot", dotDir, name), func(w *os.File) error {
			return dot.WriteCFG(w, g)
		}); err != nil {
			return err
		}

		dt := domtree.Build(ctx, g)
		if err := writeDotFile(fmt.Sprintf("%s/dom_%s.dot", dotDir, name), func(w *os.File) error {
			return dot.WriteDomTree(w, dt)
		}); err != nil {
			return err
		}

		logger.Debug("wrote dot files", zap.String("fun", name))
	}
	return nil
}

func writeDotFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	return write(f)
}

func newLogger() (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if verbose {
		zcfg = zap.NewDevelopmentConfig()
	}
	return zcfg.Build()
}
