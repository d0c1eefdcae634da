package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/davidbz/llm-workflow/internal/domain"
	"github.com/davidbz/llm-workflow/internal/http"
	"github.com/davidbz/llm-workflow/internal/observability"
)

const (
	shutdownTimeout = 10 * time.Second
	previewDims     = 5
)

// Texts embedded by the embed command when none are given.
var sampleTexts = []string{
	"The quick brown fox jumps over the lazy dog.",
	"In a hole in the ground there lived a hobbit.",
	"To be, or not to be, that is the question.",
	"Artificial intelligence is transforming software development.",
	"Open-source models provide an affordable way to do embeddings.",
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "llm-workflow",
		Short: "LLM workflow backend: chat and embedding gateway with workspace records",
		// Running without a subcommand serves HTTP.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
		SilenceUsage: true,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP API server",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runServe(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "embed [text...]",
			Short: "Embed texts and print the first dimensions of each vector",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runEmbed(cmd, args)
			},
		},
	)

	return root
}

func runServe(ctx context.Context) error {
	container, err := buildContainer()
	if err != nil {
		return err
	}

	return container.Invoke(func(server *http.Server) error {
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})
}

func runEmbed(cmd *cobra.Command, args []string) error {
	texts := args
	if len(texts) == 0 {
		texts = sampleTexts
	}

	container, err := buildContainer()
	if err != nil {
		return err
	}

	return container.Invoke(func(embeddings domain.EmbeddingGateway) error {
		result, err := embeddings.Embed(cmd.Context(), &domain.EmbeddingRequest{Texts: texts})
		if err != nil {
			observability.FromContext(cmd.Context()).Error("embedding failed", observability.Error(err))
			return err
		}

		out := cmd.OutOrStdout()
		for i, vector := range result.Vectors {
			if i >= len(texts) {
				break
			}
			fmt.Fprintf(out, "Text: %s\nEmbedding (first %d dims): %v\n\n", texts[i], previewDims, vector[:min(previewDims, len(vector))])
		}

		return nil
	})
}
