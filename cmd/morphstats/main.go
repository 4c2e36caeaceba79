// Command morphstats extracts morphology features from SWC files and fits
// each to a parametric distribution.
//
//	morphstats -config extract.yaml [-o out.json] [-log-level debug]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/TrevorS/morphstats/internal/config"
	"github.com/TrevorS/morphstats/internal/extract"
	"github.com/TrevorS/morphstats/internal/logger"
	"github.com/TrevorS/morphstats/internal/report"
	"github.com/TrevorS/morphstats/internal/store"
	"github.com/TrevorS/morphstats/morph"
)

func main() {
	configPath := flag.String("config", "", "Path to the extraction config (YAML or JSON)")
	outPath := flag.String("o", "", "Output file; overrides output.path")
	logLevel := flag.String("log-level", "", "Log level; overrides log_level")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath, *outPath, *logLevel, os.Stdout); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath, outPath, logLevel string, stdout io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if outPath != "" {
		cfg.Output.Path = outPath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logger.SetLevel(cfg.LogLevel)

	files, err := cfg.InputFiles()
	if err != nil {
		return err
	}
	logger.Infof("loading %d files for population %s", len(files), cfg.Population)
	pop, err := morph.LoadPopulation(ctx, cfg.Population, files, cfg.Workers)
	if err != nil {
		return err
	}
	logger.Debugf("loaded %d neurons, %d neurites", len(pop.Neurons), len(pop.Neurites()))

	dists, err := extract.Run(pop, cfg)
	if err != nil {
		return err
	}

	if err := writeDocument(cfg, dists, stdout); err != nil {
		return err
	}
	if cfg.Output.Chart != "" {
		if err := writeChart(cfg.Output.Chart, cfg.Population, dists); err != nil {
			return err
		}
		logger.Infof("wrote chart report to %s", cfg.Output.Chart)
	}
	if cfg.Output.Database != "" {
		id, err := saveRun(ctx, cfg.Output.Database, cfg.Population, dists)
		if err != nil {
			return err
		}
		logger.Infof("stored run %s in %s", id, cfg.Output.Database)
	}
	return nil
}

func writeDocument(cfg *config.Config, dists []extract.Distribution, stdout io.Writer) error {
	doc := extract.NewDocument(cfg.Population, dists)
	if cfg.Output.Path == "" {
		return doc.Write(stdout, cfg.Output.Format)
	}
	f, err := os.Create(cfg.Output.Path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := doc.Write(f, cfg.Output.Format); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", cfg.Output.Path, err)
	}
	return f.Close()
}

func writeChart(path, population string, dists []extract.Distribution) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart: %w", err)
	}
	if err := report.Render(f, population, dists); err != nil {
		f.Close()
		return fmt.Errorf("rendering chart: %w", err)
	}
	return f.Close()
}

func saveRun(ctx context.Context, path, population string, dists []extract.Distribution) (string, error) {
	s, err := store.Open(path)
	if err != nil {
		return "", err
	}
	defer s.Close()
	return s.SaveRun(ctx, population, dists)
}
