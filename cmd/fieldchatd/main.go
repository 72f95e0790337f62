package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/medassist/fieldchat/chat"
	"github.com/medassist/fieldchat/observability"
	"github.com/medassist/fieldchat/retrieval"
	"github.com/medassist/fieldchat/server"
)

func main() {
	var (
		configFile = flag.String("config", "", "Path to config JSON file (required)")
		addr       = flag.String("addr", ":8080", "HTTP listen address")
		docsDir    = flag.String("docs", "", "Knowledge base documents directory (overrides config)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging to stderr")
	)
	flag.Parse()

	if *configFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: fieldchatd -config <file> [-addr :8080]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := chat.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *docsDir != "" {
		cfg.Retrieval.DocsDir = *docsDir
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	gateway, err := retrieval.NewGateway(&cfg.Retrieval)
	if err != nil {
		log.Fatalf("Failed to open knowledge base: %v", err)
	}

	if kb, ok := gateway.(*retrieval.KnowledgeBase); ok && cfg.Retrieval.DocsDir != "" {
		added, err := retrieval.LoadDocuments(ctx, kb, cfg.Retrieval.DocsDir)
		if err != nil {
			log.Fatalf("Failed to load documents: %v", err)
		}
		logger.Info("knowledge base loaded", "chunks", added, "total", kb.ChunkCount())
	}

	runtime, err := chat.New(cfg,
		chat.WithGateway(gateway),
		chat.WithObserver(observability.NewSlogObserver(logger)),
	)
	if err != nil {
		log.Fatalf("Failed to create chat runtime: %v", err)
	}

	srv := &http.Server{
		Addr:    *addr,
		Handler: server.New(runtime).Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	logger.Info("listening", "addr", *addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
}
