package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kievzenit/rcc/internal/ast"
	"github.com/kievzenit/rcc/internal/compiler_errors"
	"github.com/kievzenit/rcc/internal/config"
	"github.com/kievzenit/rcc/internal/lexer"
	"github.com/kievzenit/rcc/internal/parser"
	"github.com/kievzenit/rcc/internal/semantic_analyzer"
	"golang.org/x/sync/errgroup"
)

type Result struct {
	Tokens   []lexer.Token
	Program  ast.Program
	Analysis *semantic_analyzer.Result
	Output   string
}

// Compile runs the whole front end over src. Diagnostics from every stage go
// to eh; they never stop the pipeline. The returned error is reserved for
// failures that leave no output: an unknown target, a backend refusing a
// construct, or ctx being done.
func Compile(
	ctx context.Context,
	src []byte,
	cfg config.Config,
	logger *slog.Logger,
	eh compiler_errors.ErrorHandler,
) (*Result, error) {
	backend, err := lookupBackend(cfg.Target)
	if err != nil {
		return nil, err
	}

	result := new(Result)

	start := time.Now()
	result.Tokens = lexer.NewLexer(src, eh).Tokenize()
	logger.Debug("scanned", "tokens", len(result.Tokens), "duration", time.Since(start))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = time.Now()
	result.Program = parser.NewParser(lexer.NewTokenScanner(result.Tokens), eh).Parse()
	logger.Debug("parsed", "statements", len(result.Program), "duration", time.Since(start))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts := []semantic_analyzer.Option{
		semantic_analyzer.WithLogger(logger),
	}
	if cfg.Strict {
		opts = append(opts, semantic_analyzer.WithStrict())
	}
	analyzer := semantic_analyzer.NewSemanticAnalyzer(opts...)

	analyze := func() (*semantic_analyzer.Result, error) {
		start := time.Now()
		analysis := analyzer.Analyze(result.Program)
		logger.Debug("analyzed",
			"warnings", semantic_analyzer.Messages(analysis.Warnings),
			"errors", semantic_analyzer.Messages(analysis.Errors),
			"duration", time.Since(start),
		)
		return analysis, nil
	}
	emit := func(analysis *semantic_analyzer.Result) (string, error) {
		start := time.Now()
		output, err := backend.Emit(result.Program, analysis)
		if err != nil {
			return "", fmt.Errorf("emit %s: %w", cfg.Target, err)
		}
		logger.Debug("emitted", "target", cfg.Target, "bytes", len(output), "duration", time.Since(start))
		return output, nil
	}

	// Backends that do not read the analysis get nil in the concurrent path.
	// Each goroutine owns its own variable until Wait returns.
	if cfg.Concurrent && !backend.NeedsAnalysis {
		var (
			analysis *semantic_analyzer.Result
			output   string
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var err error
			analysis, err = analyze()
			return err
		})
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var err error
			output, err = emit(nil)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		result.Analysis = analysis
		result.Output = output
	} else {
		if result.Analysis, err = analyze(); err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if result.Output, err = emit(result.Analysis); err != nil {
			return nil, err
		}
	}

	for _, warn := range result.Analysis.Warnings {
		eh.AddWarning(warn)
	}
	for _, err := range result.Analysis.Errors {
		eh.AddError(err)
	}

	return result, nil
}
