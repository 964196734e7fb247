// Package main searches for solver parameters (time step, viscosity) that
// minimize the divergence residual left after pressure projection while
// keeping the flow alive, using derivative-free optimization over scripted
// stirring runs.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/riptide/config"
)

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	frames := flag.Int("frames", 600, "Frames per evaluation run")
	maxEvals := flag.Int("max-evals", 120, "Maximum number of evaluations")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	evaluator := NewEvaluator(cfg, *frames)

	// Start from the configured values.
	initX := []float64{cfg.Solver.DT, cfg.Solver.Viscosity}

	logPath := filepath.Join(*outputDir, "calibrate_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	logWriter := csv.NewWriter(logFile)
	defer logWriter.Flush()
	logWriter.Write([]string{"eval", "fitness", "dt", "viscosity", "max_speed"})

	evalCount := 0
	bestFitness := 1e18
	bestParams := append([]float64(nil), initX...)

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			fitness := evaluator.Evaluate(x)
			evalCount++

			if fitness < bestFitness {
				bestFitness = fitness
				copy(bestParams, x)
			}

			logWriter.Write([]string{
				strconv.Itoa(evalCount),
				fmt.Sprintf("%.6f", fitness),
				fmt.Sprintf("%.4f", x[0]),
				fmt.Sprintf("%.6f", x[1]),
				fmt.Sprintf("%.3f", evaluator.LastSpeed()),
			})
			logWriter.Flush()

			fmt.Printf("Eval %d/%d: fitness=%.4f dt=%.3f visc=%.5f (best=%.4f)\n",
				evalCount, *maxEvals, fitness, x[0], x[1], bestFitness)

			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
	}

	result, err := optimize.Minimize(problem, initX, settings, &optimize.NelderMead{})
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}
	if result != nil && result.F < bestFitness {
		bestFitness = result.F
		copy(bestParams, result.X)
	}

	fmt.Printf("\nCalibration complete after %d evaluations\n", evalCount)
	fmt.Printf("Best fitness: %.4f (dt=%.3f, viscosity=%.5f)\n",
		bestFitness, bestParams[0], bestParams[1])

	// Save best config
	bestCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to reload config: %v", err)
	}
	bestCfg.Solver.DT = bestParams[0]
	bestCfg.Solver.Viscosity = bestParams[1]

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("Best config saved to: %s\n", configOutPath)
	}
}
