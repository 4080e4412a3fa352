// cmd/travel-planner/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"travel-madlibs/internal/common/config"
	"travel-madlibs/internal/common/logger"
	"travel-madlibs/internal/common/observability"
	"travel-madlibs/internal/hotelsource"
	"travel-madlibs/internal/llm"
	"travel-madlibs/internal/models"
	"travel-madlibs/internal/planner"
	"travel-madlibs/internal/ranker"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: travel-planner <command> [flags]

Commands:
  recommend   Generate destination recommendations from a mad-libs query
  hotels      Fetch ranked hotels for a destination
  warm        Fire a warm-up ping at the model provider`)
	os.Exit(2)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	if cfg.Logging.Level != "" {
		zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	}
	log := logger.NewZapAdapter(zapLog)

	obs := observability.New("travel-planner")
	defer obs.Shutdown()

	tracing := observability.NewTracing("travel-planner")
	defer tracing.Shutdown()

	// Optional diagnostics listener; the planner itself has no server
	// surface.
	if cfg.Metrics.Address != "" {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			zapLog.Info("metrics listener started", zap.String("address", cfg.Metrics.Address))
			if err := http.ListenAndServe(cfg.Metrics.Address, nil); err != nil {
				zapLog.Warn("metrics listener stopped", zap.Error(err))
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gateway := llm.NewClient(cfg.OpenAI, log)
	svc := planner.NewService(
		gateway,
		hotelsource.NewClient(cfg.Xotelo, log),
		ranker.New(gateway, log),
		cfg.Planner,
		log,
	)

	if len(os.Args) < 2 {
		usage()
	}

	start := time.Now()
	command := os.Args[1]
	args := os.Args[2:]

	var runErr error
	switch command {
	case "recommend":
		runErr = runRecommend(ctx, svc, args)
	case "hotels":
		runErr = runHotels(ctx, svc, args)
	case "warm":
		svc.WarmConnection(ctx)
	default:
		usage()
	}

	status := "success"
	if runErr != nil {
		status = "error"
	}
	obs.RecordRequest(ctx, command, status)
	obs.RecordDuration(ctx, time.Since(start), command)

	if runErr != nil {
		zapLog.Error("command failed", zap.String("command", command), zap.Error(runErr))
		os.Exit(1)
	}
}

func runRecommend(ctx context.Context, svc *planner.Service, args []string) error {
	fs := flag.NewFlagSet("recommend", flag.ExitOnError)
	tripIdea := fs.String("trip-idea", "", "what the traveller wants to do")
	companion := fs.String("companion", "", "who the traveller is going with")
	location := fs.String("location", "", "where the traveller wants to go")
	comingFrom := fs.String("from", "", "where the traveller is coming from")
	profile := fs.String("profile", "", "optional free-text travel profile")
	fs.Parse(args)

	resp := svc.GenerateTravelRecommendations(ctx, models.TravelQuery{
		TripIdea:        *tripIdea,
		TravelCompanion: *companion,
		Location:        *location,
		ComingFrom:      *comingFrom,
		TravelProfile:   *profile,
	})
	if err := printJSON(resp); err != nil {
		return err
	}
	if resp.Error != "" {
		return fmt.Errorf("recommendation failed: %s", resp.Error)
	}
	return nil
}

func runHotels(ctx context.Context, svc *planner.Service, args []string) error {
	fs := flag.NewFlagSet("hotels", flag.ExitOnError)
	destination := fs.String("destination", "", "destination city")
	region := fs.String("region", "", "destination region or country")
	tripIdea := fs.String("trip-idea", "", "optional trip idea used for ranking")
	limit := fs.Int("limit", 0, "maximum ranked hotels to return (0 = configured default)")
	llmOnly := fs.Bool("llm-only", false, "skip the factual source and ask the model directly")
	fs.Parse(args)

	if *destination == "" {
		return fmt.Errorf("hotels: -destination is required")
	}

	if *llmOnly {
		hotels, err := svc.FetchHotelRecommendations(ctx, *destination, *region)
		if err != nil {
			return err
		}
		return printJSON(hotels)
	}

	return printJSON(svc.FetchHybridHotels(ctx, *destination, *region, *tripIdea, *limit))
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
