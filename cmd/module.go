package main

import (
	"github.com/kievzenit/rcc/internal/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}
