// Package mcpserver exposes icon generation as Model Context Protocol
// tools over stdio or streamable HTTP.
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverName = "favicon"

// NewServer builds an MCP server with all icon tools registered.
func NewServer(cfg Config, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version}, nil)
	h := handlers{cfg: cfg}
	mcp.AddTool(server, GenerateTool(), h.Generate)
	mcp.AddTool(server, StatusTool(), h.Status)
	mcp.AddTool(server, HTMLTool(), h.HTML)
	return server
}

// Run serves until ctx is canceled.
func Run(ctx context.Context, cfg Config, version string) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}
	server := NewServer(cfg, version)

	switch cfg.Transport {
	case TransportStdio:
		return runWithTransport(ctx, server, &mcp.StdioTransport{})
	case TransportHTTP:
		return runHTTP(ctx, server, cfg.HTTPAddr)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

func runWithTransport(ctx context.Context, server *mcp.Server, transport mcp.Transport) error {
	err := server.Run(ctx, transport)
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

func runHTTP(ctx context.Context, server *mcp.Server, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("http shutdown: %v", err)
		}
	}()

	log.Printf("listening on http://%s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
