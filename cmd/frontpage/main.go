// Package main starts the localized front page web service.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	frontpagecmd "github.com/louisbranch/frontpage/internal/cmd/frontpage"
	"github.com/louisbranch/frontpage/internal/platform/config"
)

func main() {
	cfg, err := frontpagecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("frontpage: parse config: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := frontpagecmd.Run(ctx, cfg); err != nil {
		stop()
		config.Exitf("frontpage: serve: %v", err)
	}
}
