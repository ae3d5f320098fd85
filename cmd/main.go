package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kievzenit/rcc/internal/compiler_errors"
	"github.com/kievzenit/rcc/internal/config"
	"github.com/kievzenit/rcc/internal/logs"
	"github.com/kievzenit/rcc/internal/pipeline"
	"github.com/reusee/dscope"
	"github.com/sanity-io/litter"
)

func main() {
	configPath := flag.String("config", "", "CUE configuration file")
	flag.Usage = func() {
		usage(flag.CommandLine.Output())
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	os.Exit(run(flag.Arg(0), *configPath))
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "usage: rcc [-config file.cue] source\n")
	fmt.Fprintf(w, "targets: %s\n", strings.Join(pipeline.Backends(), ", "))
}

func run(fileName string, configPath string) int {
	var configPaths []string
	if configPath != "" {
		configPaths = append(configPaths, configPath)
	}
	cfg, err := config.Load(configPaths...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	level, err := cfg.Level()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logs.SetLevel(level)

	exitCode := 0
	dscope.New(new(Module)).Fork(
		dscope.Provide(cfg),
	).Call(func(
		logger logs.Logger,
		writer logs.Writer,
		cfg config.Config,
	) {
		exitCode = compile(fileName, cfg, logger, writer)
	})
	return exitCode
}

func compile(fileName string, cfg config.Config, logger logs.Logger, writer logs.Writer) int {
	fileData, err := os.ReadFile(fileName)
	if err != nil {
		logger.Error("read source", "error", err)
		return 1
	}

	eh := compiler_errors.NewErrorHandler(writer)
	result, err := pipeline.Compile(context.Background(), fileData, cfg, logger, eh)
	eh.Report()
	if err != nil {
		logger.Error("compile", "file", fileName, "error", err)
		return 1
	}

	if cfg.DumpTokens {
		for _, token := range result.Tokens {
			fmt.Fprintln(writer, token.String())
		}
	}
	if cfg.DumpAST {
		fmt.Fprintln(writer, litter.Sdump(result.Program))
	}
	if cfg.DumpSymbols {
		fmt.Fprint(writer, result.Analysis.Symbols.String())
	}

	if err := writeOutput(cfg.Output, result.Output); err != nil {
		logger.Error("write output", "output", cfg.Output, "error", err)
		return 1
	}
	logger.Debug("compiled", "file", fileName, "target", cfg.Target, "output", cfg.Output)

	if cfg.Strict && eh.HasErrors() {
		return 1
	}
	return 0
}

func writeOutput(path string, output string) error {
	if path == "" {
		_, err := io.WriteString(os.Stdout, output)
		return err
	}
	return os.WriteFile(path, []byte(output), 0o644)
}
