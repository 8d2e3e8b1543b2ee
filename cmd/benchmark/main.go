package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/limaJavier/localsearch-timetabling/pkg/model"
	"github.com/limaJavier/localsearch-timetabling/pkg/move"
	"github.com/limaJavier/localsearch-timetabling/pkg/solver"
	"github.com/samber/lo"
)

const demoTestName = "demo"

type ResultType int

const (
	feasible ResultType = iota
	infeasible
	unverified
)

var resultTypes = map[ResultType]string{
	feasible:   "feasible",
	infeasible: "infeasible",
	unverified: "unverified",
}

type TestMetadata struct {
	Name      string
	Timeslots int
	Rooms     int
	Lessons   int
	problem   *model.Timetable
}

type StrategyMetadata struct {
	MoveSelection move.Strategy
	Acceptance    solver.AcceptanceStrategy
	Candidates    int
	Workers       int
}

type BenchmarkResult struct {
	Test          string `csv:"Test"`
	Timeslots     int    `csv:"Timeslots"`
	Rooms         int    `csv:"Rooms"`
	Lessons       int    `csv:"Lessons"`
	MoveSelection string `csv:"Move selection"`
	Acceptance    string `csv:"Acceptance"`
	Candidates    int    `csv:"Candidates"`
	Workers       int    `csv:"Workers"`
	Seed          uint64 `csv:"Seed"`
	Duration      int64  `csv:"Duration(ms)"`
	Steps         int64  `csv:"Steps"`
	Hard          int    `csv:"Hard"`
	Soft          int    `csv:"Soft"`
	Unassigned    int    `csv:"Unassigned"`
	Result        string `csv:"Result"`
}

// Counts the steps of a solve
type stepCounter struct {
	steps int64
}

func (c *stepCounter) PhaseStarted(solver.Event) {}

func (c *stepCounter) StepEnded(event solver.Event) {
	c.steps = event.Step
}

func main() {
	directoryPtr := flag.String("dir", "", "Directory holding the JSON inputs to benchmark; if empty, the demo dataset is used")
	seedsPtr := flag.Int("seeds", 3, "Number of random seeds per test and strategy")
	stepLimitPtr := flag.Int64("step-limit", 20_000, "Step limit of every solve")
	timeLimitPtr := flag.Duration("time-limit", 0, "Time limit of every solve; disabled if zero")
	outFilePathPtr := flag.String("out", "benchmark_results.csv", "Path to the CSV file where the results will be written")
	flag.Parse()

	tests := getTests(*directoryPtr)
	strategies := getStrategies()
	results := make([]BenchmarkResult, 0, len(tests)*len(strategies)**seedsPtr)

	for _, test := range tests {
		for _, strategy := range strategies {
			for seed := range uint64(*seedsPtr) {
				fmt.Printf("Benchmarking test \"%v\" with selection \"%v\", acceptance \"%v\", %v candidates and seed %v\n", test.Name, strategy.MoveSelection, strategy.Acceptance, strategy.Candidates, seed)

				config := solver.Config{
					TimeLimit:     *timeLimitPtr,
					StepLimit:     stepLimitPtr,
					RandomSeed:    seed,
					MoveSelection: strategy.MoveSelection,
					Acceptance:    strategy.Acceptance,
					Candidates:    strategy.Candidates,
					Workers:       strategy.Workers,
				}
				results = append(results, measure(test, strategy, config))
			}
		}
	}

	toCsv(results, *outFilePathPtr)
}

func getTests(directory string) []TestMetadata {
	if directory == "" {
		return []TestMetadata{newTestMetadata(demoTestName, model.DemoData())}
	}

	testFiles, err := os.ReadDir(directory)
	if err != nil {
		log.Fatalf("cannot read directory: %v", err)
	}

	tests := make([]TestMetadata, 0, len(testFiles))
	for _, file := range lo.Filter(testFiles, func(file os.DirEntry, _ int) bool { return filepath.Ext(file.Name()) == ".json" }) {
		filename := filepath.Join(directory, file.Name())
		problem, err := model.InputFromJson(filename)
		if err != nil {
			log.Fatalf("cannot parse input file: %v", err)
		}
		tests = append(tests, newTestMetadata(filename, problem))
	}
	return tests
}

func newTestMetadata(name string, problem *model.Timetable) TestMetadata {
	return TestMetadata{
		Name:      name,
		Timeslots: len(problem.Timeslots),
		Rooms:     len(problem.Rooms),
		Lessons:   len(problem.Lessons),
		problem:   problem,
	}
}

func getStrategies() []StrategyMetadata {
	return []StrategyMetadata{
		{MoveSelection: move.Randomized, Acceptance: solver.SimulatedAnnealing, Candidates: 1, Workers: 1},
		{MoveSelection: move.Randomized, Acceptance: solver.HillClimbing, Candidates: 1, Workers: 1},
		{MoveSelection: move.Exhaustive, Acceptance: solver.SimulatedAnnealing, Candidates: 1, Workers: 1},
		{MoveSelection: move.Exhaustive, Acceptance: solver.HillClimbing, Candidates: 1, Workers: 1},
		{MoveSelection: move.Randomized, Acceptance: solver.SimulatedAnnealing, Candidates: 8, Workers: 4},
	}
}

func measure(test TestMetadata, strategy StrategyMetadata, config solver.Config) BenchmarkResult {
	counter := &stepCounter{}

	start := time.Now()
	timetable, err := solver.Solve(context.Background(), test.problem, config, solver.WithListener(counter))
	duration := time.Since(start)
	if err != nil {
		log.Fatalf("an error occurred while solving test \"%v\" with selection \"%v\" and acceptance \"%v\": %v", test.Name, strategy.MoveSelection, strategy.Acceptance, err)
	}

	result := feasible
	if !timetable.Score.Feasible() {
		result = infeasible
	} else if !model.Verify(timetable) {
		result = unverified
	}

	return BenchmarkResult{
		Test:          test.Name,
		Timeslots:     test.Timeslots,
		Rooms:         test.Rooms,
		Lessons:       test.Lessons,
		MoveSelection: string(strategy.MoveSelection),
		Acceptance:    string(strategy.Acceptance),
		Candidates:    strategy.Candidates,
		Workers:       strategy.Workers,
		Seed:          config.RandomSeed,
		Duration:      duration.Milliseconds(),
		Steps:         counter.steps,
		Hard:          timetable.Score.Hard,
		Soft:          timetable.Score.Soft,
		Unassigned:    len(timetable.Unassigned()),
		Result:        resultTypes[result],
	}
}

func toCsv(results []BenchmarkResult, path string) {
	file, err := os.Create(path)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&results, file); err != nil {
		log.Panicf("cannot write CSV records: %v", err)
	}
}
