// Command tune searches for Walk spring strength and damping that settle a
// dropped body at its floating height fastest, using Nelder-Mead from gonum.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/rogue/config"
)

// EvalRecord is one row of tune_log.csv.
type EvalRecord struct {
	Eval      int     `csv:"eval"`
	Fitness   float64 `csv:"fitness"`
	Strength  float64 `csv:"spring_strength"`
	Damper    float64 `csv:"spring_damper"`
	Settle    float64 `csv:"settle_sec_mean"`
	Overshoot float64 `csv:"overshoot_max"`
}

// formatDuration formats a duration as MmSSs.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := d / time.Minute
	s := (d - m*time.Minute) / time.Second
	return fmt.Sprintf("%dm%02ds", m, s)
}

// parseDrops parses a comma-separated list of drop heights.
func parseDrops(s string) ([]float32, error) {
	var drops []float32
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 32)
		if err != nil {
			return nil, fmt.Errorf("parsing drop height %q: %w", part, err)
		}
		drops = append(drops, float32(v))
	}
	if len(drops) == 0 {
		return nil, fmt.Errorf("no drop heights given")
	}
	return drops, nil
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	dropsFlag := flag.String("drops", "0.5,1.5,3", "Comma-separated drop heights above the floating height")
	ticks := flag.Int("ticks", 300, "Ticks per drop test")
	maxEvals := flag.Int("max-evals", 150, "Maximum number of evaluations")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if *outputDir == "" {
		slog.Error("-output is required")
		os.Exit(1)
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	drops, err := parseDrops(*dropsFlag)
	if err != nil {
		slog.Error("invalid -drops", "error", err)
		os.Exit(1)
	}
	baseCfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	params := NewParamVector()
	evaluator := NewFitnessEvaluator(params, *configPath, drops, *ticks)
	dt := baseCfg.Physics.DT

	logFile, err := os.Create(filepath.Join(*outputDir, "tune_log.csv"))
	if err != nil {
		slog.Error("failed to create log file", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()
	headerWritten := false

	evalCount := 0
	bestFitness := 1e18
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(raw)
			evalCount++

			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = raw
			}

			rec := EvalRecord{Eval: evalCount, Fitness: fitness, Strength: raw[0], Damper: raw[1]}
			results := evaluator.LastResults()
			for _, r := range results {
				rec.Settle += float64(r.SettleTicks) * dt / float64(len(results))
				rec.Overshoot = max(rec.Overshoot, r.Overshoot)
			}
			rows := []EvalRecord{rec}
			if !headerWritten {
				err = gocsv.Marshal(rows, logFile)
				headerWritten = true
			} else {
				err = gocsv.MarshalWithoutHeaders(rows, logFile)
			}
			if err != nil {
				slog.Error("failed to write log row", "error", err)
			}

			slog.Info("eval",
				"n", evalCount,
				"fitness", fitness,
				"strength", raw[0],
				"damper", raw[1],
				"settle_sec", rec.Settle,
				"best", bestFitness,
				"elapsed", formatDuration(time.Since(startTime)),
			)
			return fitness
		},
	}

	settings := &optimize.Settings{FuncEvaluations: *maxEvals}
	method := &optimize.NelderMead{}

	initX := params.Normalize(params.ExtractFromConfig(baseCfg))
	slog.Info("starting Nelder-Mead", "params", params.Dim(), "drops", drops, "max_evals", *maxEvals)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		slog.Warn("optimization ended", "error", err)
	}
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		slog.Error("no evaluation completed")
		os.Exit(1)
	}

	for i, spec := range params.Specs {
		slog.Info("best parameter", "name", spec.Name, "path", spec.Path, "value", bestParams[i])
	}

	params.ApplyToConfig(baseCfg, bestParams)
	out := filepath.Join(*outputDir, "best_config.yaml")
	if err := baseCfg.WriteYAML(out); err != nil {
		slog.Error("failed to write best config", "error", err)
		os.Exit(1)
	}
	slog.Info("tuning complete",
		"evals", evalCount,
		"best_fitness", bestFitness,
		"config", out,
		"elapsed", formatDuration(time.Since(startTime)),
	)
}
