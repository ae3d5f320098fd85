package logs

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/reusee/dscope"
)

func TestLogger(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(new(Module)).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		logger Logger,
	) {
		logger.Info("test", "hello", "world!")
	})

	if !strings.Contains(buf.String(), `msg=test hello=world!`) {
		t.Fatalf("got %q", buf.String())
	}
}

func TestSetLevel(t *testing.T) {
	defer level.Set(level.Level())

	SetLevel(slog.LevelError)

	buf := new(bytes.Buffer)
	dscope.New(new(Module)).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		logger Logger,
	) {
		logger.Info("hidden")
		logger.Error("shown")
	})

	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("info record passed an error level: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("got %q", buf.String())
	}
}

func TestToJournalKey(t *testing.T) {
	if got := toJournalKey("dump.tokens-1"); got != "DUMP_TOKENS_1" {
		t.Fatalf("got %q", got)
	}
}
