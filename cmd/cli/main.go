package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/limaJavier/localsearch-timetabling/pkg/config"
	"github.com/limaJavier/localsearch-timetabling/pkg/logger"
	"github.com/limaJavier/localsearch-timetabling/pkg/metrics"
	"github.com/limaJavier/localsearch-timetabling/pkg/model"
	"github.com/limaJavier/localsearch-timetabling/pkg/move"
	"github.com/limaJavier/localsearch-timetabling/pkg/score"
	"github.com/limaJavier/localsearch-timetabling/pkg/solver"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Exit codes
const (
	feasible   = 10
	unverified = 15
	infeasible = 20
)

func main() {
	// Define arguments
	filePathPtr := flag.String("file", "", "Path to the input file; if empty, the demo dataset is solved")
	configPathPtr := flag.String("config", "", "Path to a configuration file (json, yaml or toml)")
	outFilePathPtr := flag.String("out", "", "Path to the file where the JSON output will be written; if empty, only the table is printed")
	timeLimitPtr := flag.Duration("time-limit", 0, "Wall-clock budget of the search, e.g. \"30s\"; overrides the configuration when positive")
	stepLimitPtr := flag.Int64("step-limit", -1, "Maximum number of steps; overrides the configuration when non-negative")
	unimprovedStepLimitPtr := flag.Int64("unimproved-step-limit", -1, "Maximum number of consecutive steps without improving the best score; overrides the configuration when non-negative")
	seedPtr := flag.Uint64("seed", 0, "Random seed; overrides the configuration when positive")
	selectionPtr := flag.String("selection", "", "Move selection: \"exhaustive\" or \"randomized\"")
	acceptancePtr := flag.String("acceptance", "", "Acceptance: \"simulatedAnnealing\" or \"hillClimbing\"")
	candidatesPtr := flag.Int("candidates", 0, "Candidate moves evaluated per step")
	workersPtr := flag.Int("workers", 0, "Goroutines evaluating candidate moves")
	metricsAddrPtr := flag.String("metrics-addr", "", "Address to expose Prometheus metrics on while solving, e.g. \":9090\"")
	flag.Parse()

	cfg, err := config.Load(*configPathPtr)
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}

	// Flags take precedence over the configuration
	if *timeLimitPtr > 0 {
		cfg.Solver.TimeLimit = *timeLimitPtr
	}
	if *stepLimitPtr >= 0 {
		cfg.Solver.StepLimit = stepLimitPtr
	}
	if *unimprovedStepLimitPtr >= 0 {
		cfg.Solver.UnimprovedStepLimit = unimprovedStepLimitPtr
	}
	if *seedPtr > 0 {
		cfg.Solver.RandomSeed = *seedPtr
	}
	if *selectionPtr != "" {
		cfg.Solver.MoveSelection = move.Strategy(strings.ToLower(*selectionPtr))
	}
	if *acceptancePtr != "" {
		cfg.Solver.Acceptance = solver.AcceptanceStrategy(*acceptancePtr)
	}
	if *candidatesPtr > 0 {
		cfg.Solver.Candidates = *candidatesPtr
	}
	if *workersPtr > 0 {
		cfg.Solver.Workers = *workersPtr
	}
	if *metricsAddrPtr != "" {
		cfg.MetricsAddr = *metricsAddrPtr
	}

	zapLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("cannot build logger: %v", err)
	}
	defer zapLogger.Sync()

	// Extract input
	problem := model.DemoData()
	if *filePathPtr != "" {
		problem, err = model.InputFromJson(*filePathPtr)
		if err != nil {
			zapLogger.Fatal("cannot parse input file", zap.Error(err))
		}
	}

	options := []solver.Option{solver.WithLogger(zapLogger)}
	if cfg.MetricsAddr != "" {
		collector := metrics.NewCollector()
		options = append(options, solver.WithListener(collector))
		serveMetrics(cfg.MetricsAddr, collector, zapLogger)
	}

	engine, err := solver.New(cfg.Solver, options...)
	if err != nil {
		zapLogger.Fatal("cannot build solver", zap.Error(err))
	}

	// Interrupting stops the search and keeps the best timetable found so far
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	timetable, err := engine.Solve(ctx, problem)
	if err != nil {
		zapLogger.Fatal("an error occurred during timetable construction", zap.Error(err))
	}

	explanation, err := score.Explain(timetable)
	if err != nil {
		zapLogger.Fatal("cannot explain score", zap.Error(err))
	}

	renderTimetable(os.Stdout, timetable)
	fmt.Printf("\nScore: %v\n", timetable.Score)
	for _, constraintScore := range lo.Filter(explanation, func(constraintScore score.ConstraintScore, _ int) bool { return constraintScore.Penalty > 0 }) {
		fmt.Printf("  %v (%v): %v\n", constraintScore.Name, constraintScore.Level, constraintScore.Penalty)
	}

	if *outFilePathPtr != "" {
		outputJson, err := json.MarshalIndent(buildOutput(timetable, explanation), "", "  ")
		if err != nil {
			zapLogger.Fatal("an error occurred while building output json", zap.Error(err))
		}
		if err := os.WriteFile(*outFilePathPtr, outputJson, 0666); err != nil {
			zapLogger.Fatal("an error occurred while writing to the output file", zap.Error(err))
		}
	}

	zapLogger.Sync()
	if !timetable.Score.Feasible() {
		os.Exit(infeasible)
	} else if !model.Verify(timetable) {
		zapLogger.Error("feasible timetable failed verification")
		os.Exit(unverified)
	}
	os.Exit(feasible)
}

func serveMetrics(addr string, collector *metrics.Collector, zapLogger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		zapLogger.Info("Serving metrics", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Error("metrics server stopped", zap.Error(err))
		}
	}()
}
