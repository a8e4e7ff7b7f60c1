package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"freqfilter/pkg/config"
	"freqfilter/pkg/filter"
	"freqfilter/pkg/imageio"
	"freqfilter/pkg/pipeline"
	"freqfilter/pkg/visualization"
)

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "freqfilter.yaml", "YAML configuration file (defaults are used if missing)")
	writeConfig := flag.Bool("write-config", false, "Write the default configuration to -config and exit")
	inputDir := flag.String("input", "", "Directory containing grayscale NxN images")
	imageIndex := flag.Int("image", 0, "Index of the image to filter, in sorted order")
	filterName := flag.String("filter", "", "Filter kind, e.g. ideal-lowpass, gaussian-highpass, or 0-5")
	cutoffIndex := flag.Int("cutoff", -1, "Cutoff selector index (cutoff = scale * (index + 1))")
	cutoffValue := flag.Float64("cutoff-value", 0, "Explicit cutoff / sigma, overrides -cutoff")
	outputDir := flag.String("output", "", "Directory for composites and panels")
	sweep := flag.Bool("sweep", false, "Render every filter kind at every cutoff index for the selected image")
	numCores := flag.Int("cores", 0, "Number of concurrent runs during a sweep (0 = config value)")
	quiet := flag.Bool("quiet", false, "Suppress progress output")
	flag.Parse()

	if err := checkFlags(setFlags(), *cutoffValue, *sweep); err != nil {
		log.Fatalf("Invalid arguments: %v", err)
	}

	if *writeConfig {
		if err := config.CreateDefaultConfigFile(*configPath); err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		fmt.Printf("Default configuration written to %s\n", *configPath)
		return
	}

	// Validate inputs
	if *inputDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	applyFlags(cfg, *filterName, *cutoffIndex, *outputDir, *numCores, *quiet)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	kind, err := filter.ParseKind(cfg.Filter.Kind)
	if err != nil {
		log.Fatalf("Invalid filter: %v", err)
	}

	verbose := cfg.Output.Verbose
	if verbose {
		fmt.Println("================================")
		fmt.Println("FREQUENCY-DOMAIN IMAGE FILTERING")
		fmt.Println("================================")
	}

	images, err := imageio.LoadDir(*inputDir, cfg.Transform.Size, verbose)
	if err != nil {
		log.Fatalf("Failed to load images: %v", err)
	}

	p, err := pipeline.New(images, pipeline.Options{
		Scales:       cfg.Filter.Scales,
		LogDivisor:   cfg.Display.LogDivisor,
		CacheSpectra: cfg.Filter.CacheSpectra || *sweep,
		NumWorkers:   cfg.Processing.NumCores,
		Verbose:      verbose && !*sweep,
	})
	if err != nil {
		log.Fatalf("Failed to create pipeline: %v", err)
	}

	startTime := time.Now()

	if *sweep {
		cutoffs := make([]int, cfg.Filter.MaxCutoffIndex+1)
		for i := range cutoffs {
			cutoffs[i] = i
		}
		sels := pipeline.Selections(*imageIndex, filter.Kinds, cutoffs)
		if verbose {
			fmt.Printf("Sweeping %d filter settings with %d workers...\n", len(sels), cfg.Processing.NumCores)
		}

		results, err := p.Sweep(context.Background(), sels)
		if err != nil {
			log.Fatalf("Sweep failed: %v", err)
		}
		paths, err := visualization.SaveSweep(results, cfg.Output.Dir, cfg.Display.LogDivisor, cfg.Output.Format)
		if err != nil {
			log.Fatalf("Failed to save sweep: %v", err)
		}

		if verbose {
			for i, res := range results {
				printMetrics(res)
				fmt.Printf("   -> %s\n", paths[i])
			}
			fmt.Printf("\nSweep completed in %.2f seconds\n", time.Since(startTime).Seconds())
		}
		return
	}

	res, err := p.Run(pipeline.Selection{
		ImageIndex:  *imageIndex,
		Kind:        kind,
		CutoffIndex: cfg.Filter.CutoffIndex,
		Cutoff:      *cutoffValue,
	})
	if err != nil {
		log.Fatalf("Filtering failed: %v", err)
	}

	viewer := visualization.NewViewer(res, cfg.Display.LogDivisor, cfg.Output.Format)
	outputPath := filepath.Join(cfg.Output.Dir, viewer.Name()+"."+cfg.Output.Format)
	if err := viewer.SaveComposite(outputPath); err != nil {
		log.Fatalf("Failed to save display: %v", err)
	}
	if cfg.Output.SavePanels {
		if err := viewer.SavePanels(cfg.Output.Dir); err != nil {
			log.Printf("Warning: Failed to save panels: %v", err)
		}
	}

	if verbose {
		fmt.Printf("\nFiltering completed in %.2f seconds\n", time.Since(startTime).Seconds())
		printMetrics(res)
		fmt.Printf("Display saved to: %s\n", outputPath)
	}
}

// setFlags returns the names of the flags given on the command line
func setFlags() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

// checkFlags rejects an explicit cutoff that is not positive, and cutoff
// selections combined with -sweep, which renders every cutoff index anyway
func checkFlags(set map[string]bool, cutoffValue float64, sweep bool) error {
	if set["cutoff-value"] && !(cutoffValue > 0) {
		return fmt.Errorf("-cutoff-value must be positive, got %v", cutoffValue)
	}
	if sweep && (set["cutoff"] || set["cutoff-value"]) {
		return errors.New("-sweep renders every cutoff index and cannot be combined with -cutoff or -cutoff-value")
	}
	return nil
}

// applyFlags overrides configuration values with explicitly set flags
func applyFlags(cfg *config.Config, filterName string, cutoffIndex int, outputDir string, numCores int, quiet bool) {
	if filterName != "" {
		cfg.Filter.Kind = filterName
	}
	if cutoffIndex >= 0 {
		cfg.Filter.CutoffIndex = cutoffIndex
	}
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	if numCores > 0 {
		cfg.Processing.NumCores = numCores
	}
	if quiet {
		cfg.Output.Verbose = false
	}
}

func printMetrics(res *pipeline.Result) {
	m := res.Metrics
	fmt.Printf("%s on %s:\n", res.Params, res.Source.Filename)
	fmt.Printf("   RMSE: %.3f  SSIM: %.3f  Correlation: %.3f\n", m.RMSE, m.SSIM, m.Correlation)
	fmt.Printf("   Energy retained: %.2f%%  Imaginary residual: %.3g\n", m.EnergyRetained*100, m.ImagResidual)
}
