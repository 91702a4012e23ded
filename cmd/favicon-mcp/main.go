package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Mavwarf/favicon/internal/mcpserver"
)

var version = "dev"

// main starts the MCP server on stdio or HTTP.
func main() {
	cfg, err := mcpserver.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[MCP] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := mcpserver.Run(ctx, cfg, version); err != nil {
		log.Fatalf("failed to serve MCP: %v", err)
	}
}
