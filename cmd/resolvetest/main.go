// resolvetest resolves a market or event slug against the Gamma API and
// prints the descriptor a recording session would subscribe with.
// Usage: go run ./cmd/resolvetest -slug will-x-win-the-2026-election
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/clobwatch/polymarket-data/internal/gamma"
)

func main() {
	slug := flag.String("slug", "", "market or event slug to resolve (required)")
	baseURL := flag.String("base-url", gamma.DefaultBaseURL, "Gamma API base URL")
	timeout := flag.Duration("timeout", 30*time.Second, "overall resolution timeout")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	if *slug == "" {
		logger.Error("missing required -slug flag")
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := gamma.NewClient(
		*baseURL,
		gamma.WithLogger(logger),
		gamma.WithDebug(true),
	)

	desc, err := client.ResolveSlug(ctx, *slug)
	if err != nil {
		logger.Error("resolution failed", "slug", *slug, "error", err)
		os.Exit(1)
	}

	fmt.Printf("slug:     %s\n", desc.Slug)
	fmt.Printf("question: %s\n", desc.Question)
	fmt.Printf("tokens:   %d\n", len(desc.AssetIDs))
	for i, id := range desc.AssetIDs {
		fmt.Printf("  %-10s %s\n", desc.OutcomeLabel(i), id)
	}
}
