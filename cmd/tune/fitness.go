package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/rogue/config"
)

// Fitness weights
const (
	settleWeight    = 1.0 // per second to settle
	overshootWeight = 4.0
	errorWeight     = 10.0
	lostPenalty     = 1e3
)

// FitnessEvaluator runs drop tests and scores spring parameters (lower = better).
type FitnessEvaluator struct {
	params     *ParamVector
	configPath string
	drops      []float32
	ticks      int

	mu          sync.Mutex
	lastResults []DropResult
}

// NewFitnessEvaluator creates a new evaluator. Each evaluation loads a fresh
// config from configPath so concurrent runs never share state.
func NewFitnessEvaluator(params *ParamVector, configPath string, drops []float32, ticks int) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		configPath: configPath,
		drops:      drops,
		ticks:      ticks,
	}
}

// LastResults returns the drop results of the most recent evaluation.
func (fe *FitnessEvaluator) LastResults() []DropResult {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastResults
}

// Evaluate scores raw parameter values, running every drop height in parallel.
func (fe *FitnessEvaluator) Evaluate(raw []float64) float64 {
	results := make([]DropResult, len(fe.drops))
	dt := 0.0

	var wg sync.WaitGroup
	for i, drop := range fe.drops {
		cfg, err := config.Load(fe.configPath)
		if err != nil {
			return math.Inf(1)
		}
		fe.params.ApplyToConfig(cfg, raw)
		dt = cfg.Physics.DT

		wg.Add(1)
		go func(idx int, c *config.Config, h float32) {
			defer wg.Done()
			results[idx] = RunDrop(c, h, fe.ticks)
		}(i, cfg, drop)
	}
	wg.Wait()

	fe.mu.Lock()
	fe.lastResults = results
	fe.mu.Unlock()

	return score(results, dt)
}

// score averages the per-drop cost.
func score(results []DropResult, dt float64) float64 {
	if len(results) == 0 {
		return math.Inf(1)
	}
	var total float64
	for _, r := range results {
		if r.Lost {
			total += lostPenalty
			continue
		}
		total += settleWeight*float64(r.SettleTicks)*dt +
			overshootWeight*r.Overshoot +
			errorWeight*r.MeanError
	}
	return total / float64(len(results))
}
