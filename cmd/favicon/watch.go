package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/Mavwarf/favicon/internal/watch"
)

func watchCmd(g globals, args []string) error {
	f, err := parseGenFlags(args)
	if err != nil {
		return err
	}
	// Mode and output directory are resolved once and reused for every
	// regeneration.
	p, err := prepare(g, f)
	if err != nil {
		return err
	}
	printNotices(os.Stderr, p.Notices())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	w, err := watch.New(p.Request.SourcePath, watch.DefaultDebounce)
	if err != nil {
		return err
	}

	regenerate := func(ctx context.Context) {
		fmt.Printf("[%s] regenerating from %s\n", time.Now().Format("15:04:05"), p.Request.SourcePath)
		if err := runOnce(ctx, os.Stdout, os.Stderr, p, f.html); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}

	regenerate(ctx)
	fmt.Printf("Watching %s (Ctrl+C to stop)\n", p.Request.SourcePath)
	return w.Run(ctx, regenerate)
}
