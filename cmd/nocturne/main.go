package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	nocturnecmd "github.com/nocturne-rpg/nocturne/internal/cmd/nocturne"
)

// main starts the chronicle MCP server on stdio or HTTP.
func main() {
	cfg, err := nocturnecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[NOCTURNE] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := nocturnecmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
