package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aluiziolira/go-catalog-sync/browse"
	"github.com/aluiziolira/go-catalog-sync/config"
	"github.com/aluiziolira/go-catalog-sync/extract"
	"github.com/aluiziolira/go-catalog-sync/models"
	"github.com/aluiziolira/go-catalog-sync/paginate"
	"github.com/aluiziolira/go-catalog-sync/reconcile"
	"github.com/aluiziolira/go-catalog-sync/report"
	"github.com/aluiziolira/go-catalog-sync/title"
)

func main() {
	defaultCfg := config.DefaultConfig()
	sourceDefault, _ := config.EnvString("CATSYNC_SOURCE_URL")
	targetDefault, _ := config.EnvString("CATSYNC_TARGET_URL")
	aliasDefault, _ := config.EnvString("CATSYNC_ALIASES")
	exemptDefault, _ := config.EnvString("CATSYNC_EXEMPTIONS")
	outputDefault := defaultCfg.OutputFile
	if value, ok := config.EnvString("CATSYNC_OUTPUT"); ok {
		outputDefault = value
	}
	pagesDefault := defaultCfg.MaxPages
	if value, ok, err := config.EnvInt("CATSYNC_PAGES"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid CATSYNC_PAGES: %v\n", err)
		os.Exit(1)
	} else if ok {
		pagesDefault = value
	}
	metricsDefault, _ := config.EnvString("CATSYNC_METRICS_ADDR")

	sourceURL := flag.String("source-url", sourceDefault, "Storefront listing URL (source catalog)")
	targetURL := flag.String("target-url", targetDefault, "Public list URL (target catalog)")
	aliasFile := flag.String("aliases", aliasDefault, "YAML alias table path")
	exemptFile := flag.String("exemptions", exemptDefault, "YAML exemption list path")
	maxPages := flag.Int("pages", pagesDefault, "Safety ceiling on pages per traversal")
	pageSize := flag.Int("page-size", defaultCfg.PageSize, "Items per page for offset-style pagination")
	delayMs := flag.Int("delay", int(defaultCfg.PageDelay/time.Millisecond), "Inter-page delay (milliseconds)")
	timeoutMs := flag.Int("timeout", int(defaultCfg.Timeout/time.Millisecond), "Per-request timeout (milliseconds)")
	outputFile := flag.String("output", outputDefault, "Diff output file path")
	outputFormat := flag.String("format", defaultCfg.OutputFormat, "Output format: csv, json, or dual")
	metricsAddr := flag.String("metrics-addr", metricsDefault, "Prometheus metrics listen address (e.g. :9090)")
	verbose := flag.Bool("v", false, "Enable verbose logging")

	flag.Parse()

	logger, level := newLogger(*verbose)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(level.Level())

	cfg := defaultCfg
	cfg.SourceURL = *sourceURL
	cfg.TargetURL = *targetURL
	cfg.AliasFile = *aliasFile
	cfg.ExemptionFile = *exemptFile
	cfg.MaxPages = *maxPages
	cfg.PageSize = *pageSize
	cfg.PageDelay = time.Duration(*delayMs) * time.Millisecond
	cfg.Timeout = time.Duration(*timeoutMs) * time.Millisecond
	cfg.OutputFile = *outputFile
	cfg.OutputFormat = strings.ToLower(*outputFormat)
	cfg.MetricsAddr = *metricsAddr
	cfg.Verbose = *verbose

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	mapper, overrides := loadTables(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := paginate.NewMetrics()
	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		metricsServer = &http.Server{
			Addr:    cfg.MetricsAddr,
			Handler: promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}),
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server failed", slog.Any("error", err))
			}
		}()
		slog.Info("metrics server enabled", slog.String("addr", cfg.MetricsAddr))
	}

	startTime := time.Now()

	// The two traversals never share a driver session.
	sourceResult, err := traverse(ctx, cfg, metrics, "source", cfg.SourceURL, extract.Storefront)
	if err != nil {
		slog.Error("source catalog fetch failed", slog.Any("error", err))
		os.Exit(1)
	}
	targetResult, err := traverse(ctx, cfg, metrics, "target", cfg.TargetURL, extract.ListPage)
	if err != nil {
		slog.Error("target catalog fetch failed", slog.Any("error", err))
		os.Exit(1)
	}

	engine := reconcile.New(mapper, overrides)
	result := engine.Compare(sourceResult.Entries, targetResult.Entries)

	writer, err := createWriter(cfg.OutputFormat, cfg.OutputFile)
	if err != nil {
		slog.Error("creating writer", slog.Any("error", err))
		os.Exit(1)
	}
	if err := writer.Write(result); err != nil {
		slog.Error("writing diff", slog.Any("error", err))
		writer.Close()
		os.Exit(1)
	}
	if err := writer.Close(); err != nil {
		slog.Error("close writer", slog.Any("error", err))
		os.Exit(1)
	}
	if err := writer.Validate(); err != nil {
		slog.Error("output validation failed", slog.Any("error", err))
		os.Exit(1)
	}

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("metrics server shutdown failed", slog.Any("error", err))
		}
		cancel()
	}

	printSummary(sourceResult, targetResult, result, time.Since(startTime), cfg.OutputFile)
}

func loadTables(cfg *config.Config) (*title.Mapper, *title.OverrideSet) {
	aliases, err := config.LoadAliases(cfg.AliasFile)
	if err != nil {
		// A broken table degrades to direct matching, never to a failure.
		slog.Warn("alias table unavailable, using direct matching", slog.Any("error", err))
		aliases = nil
	}
	exemptions, err := config.LoadExemptions(cfg.ExemptionFile)
	if err != nil {
		slog.Warn("exemption list unavailable, no removals suppressed", slog.Any("error", err))
		exemptions = nil
	}
	slog.Info("tables loaded",
		slog.Int("aliases", len(aliases)),
		slog.Int("exemptions", len(exemptions)),
	)
	return title.NewMapper(aliases), title.NewOverrideSet(exemptions)
}

func traverse(ctx context.Context, cfg *config.Config, metrics *paginate.Metrics, catalog, listingURL string, extractFn paginate.ExtractFunc) (*models.TraversalResult, error) {
	drv, err := browse.NewCollyDriver(browse.DriverConfig{
		AllowedURL: listingURL,
		UserAgent:  cfg.UserAgent,
		Timeout:    cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("initialise %s driver: %w", catalog, err)
	}
	defer drv.Close()

	loadOpts := browse.LoadOptions{WaitMode: browse.WaitNetworkIdle, Timeout: cfg.NavTimeout}
	if err := drv.Load(ctx, listingURL, loadOpts); err != nil {
		return nil, fmt.Errorf("load %s listing: %w", catalog, err)
	}

	ctrl := paginate.New(drv, paginate.Options{
		Catalog:       catalog,
		MaxPages:      cfg.MaxPages,
		PageSize:      cfg.PageSize,
		PageDelay:     cfg.PageDelay,
		NavTimeout:    cfg.NavTimeout,
		SettleTimeout: cfg.SettleTimeout,
	}, metrics)

	return ctrl.Run(ctx, extractFn)
}

func createWriter(format, filename string) (report.OutputWriter, error) {
	switch format {
	case "json":
		return report.NewJSONWriter(filename)
	case "csv":
		return report.NewCSVWriter(filename)
	case "dual":
		jsonFilename := strings.TrimSuffix(filename, ".csv") + ".json"
		return report.NewDualWriter(filename, jsonFilename)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func printSummary(source, target *models.TraversalResult, result *models.ComparisonResult, duration time.Duration, outputFile string) {
	summary := result.Summarize()
	separator := "--------------------------------------------------"
	fmt.Println("\n" + separator)
	fmt.Println("Catalog sync complete")
	fmt.Printf("  Source entries:  %d (%d pages, %s)\n", len(source.Entries), source.PagesVisited, source.Strategy)
	fmt.Printf("  Target entries:  %d (%d pages, %s)\n", len(target.Entries), target.PagesVisited, target.Strategy)
	fmt.Printf("  To add:          %d\n", summary.Added)
	fmt.Printf("  To remove:       %d\n", summary.Removed)
	fmt.Printf("  In sync:         %d\n", summary.InSync)
	if summary.Balanced {
		fmt.Println("  Catalogs are in sync")
	} else {
		fmt.Printf("  Pending changes: %d\n", summary.Pending)
	}
	for _, w := range append(source.Warnings, target.Warnings...) {
		fmt.Printf("  Warning:         %s\n", w)
	}
	fmt.Printf("  Duration:        %v\n", duration)
	fmt.Printf("  Output file:     %s\n", outputFile)
	fmt.Println(separator)
}

func newLogger(verbose bool) (*slog.Logger, *slog.LevelVar) {
	level := &slog.LevelVar{}
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if isTerminal(os.Stdout) {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler), level
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
