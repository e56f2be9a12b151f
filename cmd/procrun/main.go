package main

import (
	"github.com/zorba-modules/process/internal/cli"
	"github.com/zorba-modules/process/internal/metrics"
)

func main() {
	metrics.EmitBuildInfo()
	cli.Execute()
}
