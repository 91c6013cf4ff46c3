// Command tab runs a page context for a local HTML or markdown file.
//
// Usage:
//
//	tab -file notes.md                          # restore highlights, stay connected to the hub
//	tab -file page.html -select "quick brown"   # highlight the first occurrence, then stay connected
//	tab -file page.html -define "ephemeral" -hub ""
//	tab -file notes.md -activate                # take over hub messages from newer tabs
//
// The annotated document is written to -out after every change.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"pagemark/internal/config"
	"pagemark/internal/contextutil"
	"pagemark/internal/highlight"
	"pagemark/internal/page"
	"pagemark/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	file := flag.String("file", "", "HTML or markdown file to open (required)")
	pageURL := flag.String("url", "", "page URL the highlights belong to (default file://<abs path>)")
	hubURL := flag.String("hub", cfg.HubURL, "hub websocket URL, empty to run offline")
	quote := flag.String("select", "", "highlight the first occurrence of this text")
	define := flag.String("define", "", "show the definition of this text")
	activate := flag.Bool("activate", false, "make this tab the one the hub sends to")
	out := flag.String("out", "", "where to write the annotated document (default <file>.annotated.html)")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: tab -file <path> [-url <url>] [-hub <ws url>] [-select <text>] [-define <text>] [-activate] [-out <path>]")
		os.Exit(2)
	}

	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	logger := slog.New(handler).With("file", *file)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = contextutil.WithLogger(ctx, logger)

	if err := run(ctx, cfg, runOptions{
		file:     *file,
		url:      *pageURL,
		hub:      *hubURL,
		quote:    *quote,
		define:   *define,
		out:      *out,
		activate: *activate,
	}); err != nil {
		logger.Error("tab: fatal", "error", err)
		os.Exit(1)
	}
}

type runOptions struct {
	file, url, hub, quote, define, out string
	activate                           bool
}

func run(ctx context.Context, cfg *config.Config, o runOptions) error {
	logger := contextutil.LoggerFromContext(ctx)

	abs, err := filepath.Abs(o.file)
	if err != nil {
		return err
	}
	if o.url == "" {
		o.url = "file://" + filepath.ToSlash(abs)
	}
	if o.out == "" {
		o.out = abs + ".annotated.html"
	}

	doc, err := page.LoadFile(abs)
	if err != nil {
		return err
	}

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()
	if err := storage.Migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	write := func(content string) {
		if err := os.WriteFile(o.out, []byte(content), 0644); err != nil {
			logger.ErrorContext(ctx, "failed to write annotated document", "path", o.out, "error", err)
		}
	}

	tab, report, err := page.Open(ctx, page.Options{
		URL:          o.url,
		Doc:          doc,
		Store:        highlight.NewStore(storage.NewKVRepo(db)),
		DismissAfter: cfg.PopupDismiss,
		OnChange:     write,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = tab.Close()
	}()
	logger.InfoContext(ctx, "highlights restored", "url", o.url, "restored", len(report.Restored), "skipped", len(report.Skipped))

	content, err := tab.Render()
	if err != nil {
		return err
	}
	write(content)

	if o.hub != "" {
		if err := tab.Connect(ctx, o.hub); err != nil {
			return fmt.Errorf("failed to connect to hub: %w", err)
		}
		if o.activate {
			if err := tab.Activate(ctx); err != nil {
				return fmt.Errorf("failed to activate tab: %w", err)
			}
		}
	}

	if o.quote != "" {
		record, err := tab.Capture(ctx, o.quote)
		if err != nil {
			return err
		}
		logger.InfoContext(ctx, "highlight saved", "id", record.ID, "text", record.Text)
	}

	if o.define != "" {
		popup, err := tab.ShowDefinition(ctx, o.define)
		if err != nil {
			logger.WarnContext(ctx, "definition failed", "text", o.define, "error", err)
		} else {
			fmt.Printf("%s: %s\n", popup.Text, popup.Definition)
		}
	}

	if o.hub == "" {
		return nil
	}

	logger.InfoContext(ctx, "tab connected; waiting for messages", "hub", o.hub, "out", o.out)
	<-ctx.Done()
	return nil
}
