package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgallion1/specdoc/internal/compose"
	"github.com/dgallion1/specdoc/internal/flow"
	"github.com/dgallion1/specdoc/internal/render"
	"github.com/dgallion1/specdoc/internal/spec"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags, err := parseFlags(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if flags.verbose {
		level = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	payload, err := spec.LoadPayload(flags.in)
	if err != nil {
		return err
	}

	var agent flow.Agent
	if flags.diagramURL != "" {
		httpAgent := flow.NewHTTPAgent(flags.diagramURL, flags.diagramKey, flags.diagramTimeout)
		defer httpAgent.Close()
		agent = flow.WithRetry(httpAgent, 0)
	}

	builder := compose.NewBuilder(agent, log, compose.Options{
		Title:       flags.title,
		Attribution: flags.attribution,
	})

	doc := render.NewDocument()
	stats := builder.Build(context.Background(), doc, payload)
	log.Info("composed document",
		"sections", stats.Sections,
		"paragraphs", stats.Paragraphs,
		"tables", stats.Tables,
		"diagrams", stats.Diagrams,
	)

	out, err := os.Create(flags.out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if _, err := doc.WriteTo(out); err != nil {
		out.Close()
		return fmt.Errorf("write document: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	fmt.Printf("Created %s\n", flags.out)
	return nil
}
