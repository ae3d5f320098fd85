package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

var ErrValueNotFound = errors.New("value not found")

const schema = `
target?: "cpp" | "llvm"
dump_tokens?: bool
dump_ast?: bool
dump_symbols?: bool
strict?: bool
concurrent?: bool
log_level?: "debug" | "info" | "warn" | "error"
output?: string
`

type Config struct {
	Target      string `json:"target"`
	DumpTokens  bool   `json:"dump_tokens"`
	DumpAST     bool   `json:"dump_ast"`
	DumpSymbols bool   `json:"dump_symbols"`
	Strict      bool   `json:"strict"`
	Concurrent  bool   `json:"concurrent"`
	LogLevel    string `json:"log_level"`
	Output      string `json:"output"`
}

func Default() Config {
	return Config{
		Target:   "cpp",
		LogLevel: "info",
	}
}

// Level maps LogLevel onto a slog level.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Load returns the defaults overridden by the given CUE files. When several
// files set the same key the first one wins.
func Load(paths ...string) (Config, error) {
	cfg := Default()
	loader := NewLoader(paths)

	fields := []struct {
		path   string
		target any
	}{
		{"target", &cfg.Target},
		{"dump_tokens", &cfg.DumpTokens},
		{"dump_ast", &cfg.DumpAST},
		{"dump_symbols", &cfg.DumpSymbols},
		{"strict", &cfg.Strict},
		{"concurrent", &cfg.Concurrent},
		{"log_level", &cfg.LogLevel},
		{"output", &cfg.Output},
	}
	for _, field := range fields {
		err := loader.AssignFirst(field.path, field.target)
		if err != nil && !errors.Is(err, ErrValueNotFound) {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
	}

	return cfg, nil
}

type Loader struct {
	getRoots func() ([]rootInfo, error)
}

type rootInfo struct {
	value cue.Value
	path  string
}

func NewLoader(filePaths []string) Loader {
	return Loader{
		getRoots: sync.OnceValues(func() (ret []rootInfo, err error) {
			ctx := cuecontext.New()

			schemaValue := ctx.CompileString("close({" + schema + "})")
			if err := schemaValue.Err(); err != nil {
				return nil, err
			}

			for _, filePath := range filePaths {
				content, err := os.ReadFile(filePath)
				if err != nil {
					return nil, err
				}

				value := ctx.CompileBytes(content, cue.Filename(filePath))
				if err := value.Err(); err != nil {
					return nil, err
				}

				if err := schemaValue.Unify(value).Validate(); err != nil {
					return nil, fmt.Errorf("%s: %w", filePath, err)
				}

				ret = append(ret, rootInfo{
					value: value,
					path:  filePath,
				})
			}

			return
		}),
	}
}

func (l Loader) AssignFirst(path string, target any) error {
	roots, err := l.getRoots()
	if err != nil {
		return err
	}

	cuePath := cue.ParsePath(path)
	for _, info := range roots {
		value := info.value.LookupPath(cuePath)
		if !value.Exists() || value.Err() != nil {
			continue
		}
		if err := value.Decode(target); err != nil {
			return fmt.Errorf("%s: %s: %w", info.path, path, err)
		}
		return nil
	}

	return ErrValueNotFound
}
