package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/RandyRDavila/graphcommunities/pkg/algorithms"
	"github.com/RandyRDavila/graphcommunities/pkg/config"
	"github.com/RandyRDavila/graphcommunities/pkg/graphio"
	"github.com/RandyRDavila/graphcommunities/pkg/logging"
	"github.com/RandyRDavila/graphcommunities/pkg/metrics"
	"github.com/RandyRDavila/graphcommunities/pkg/render"
)

func main() {
	var (
		input       = flag.String("input", "", "Edge file to analyse (.txt/.csv text or .gcel binary)")
		configFile  = flag.String("config", "", "YAML run configuration")
		algorithm   = flag.String("algorithm", config.DefaultAlgorithm, "louvain, kclique, label_propagation, bulk_label_propagation or pagerank")
		seed        = flag.Int64("seed", 0, "Seed for label propagation")
		sync        = flag.Bool("sync", false, "Synchronous label propagation")
		maxIter     = flag.Int("max-iter", 0, "Iteration cap (0 uses the engine default)")
		damping     = flag.Float64("damping", config.DefaultDamping, "PageRank damping factor")
		tolerance   = flag.Float64("tolerance", config.DefaultTolerance, "PageRank convergence tolerance")
		weighted    = flag.Bool("weighted", false, "Use edge weights")
		top         = flag.Int("top", config.DefaultTopN, "Ranked vertices to show for PageRank")
		directed    = flag.Bool("directed", false, "Treat text input as directed")
		logLevel    = flag.String("log-level", config.DefaultLogLevel, "debug, info, warn or error")
		logFormat   = flag.String("log-format", config.DefaultLogFormat, "json or console")
		metricsFile = flag.String("metrics-file", "", "Write Prometheus metrics to this file on exit")
		save        = flag.String("save", "", "Also save the loaded graph to this path (format from extension)")
	)
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "❌ -input is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}
	}

	// Explicit flags override the file
	flag.Visit(func(f *flag.Flag) {
		a := &cfg.Algorithm
		switch f.Name {
		case "algorithm":
			a.Name = *algorithm
			a.Synchronous = nil
		case "seed":
			a.Seed = *seed
		case "max-iter":
			a.MaxIterations = *maxIter
		case "damping":
			a.Damping = *damping
		case "tolerance":
			a.Tolerance = *tolerance
		case "weighted":
			a.Weighted = *weighted
		case "top":
			a.TopN = *top
		case "log-level":
			cfg.Logging.Level = *logLevel
		case "log-format":
			cfg.Logging.Format = *logFormat
		}
	})
	if isSet("sync") {
		cfg.Algorithm.Synchronous = sync
	}
	if err := cfg.Normalize(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	selector, err := cfg.Selector()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	logger := cfg.Logger(os.Stderr)
	registry := metrics.NewRegistry()

	loader := graphio.NewLoader(logger, registry)
	loaded, err := loader.LoadFile(*input, graphio.ReadOptions{
		Directed:      *directed,
		IgnoreWeights: !cfg.Algorithm.Weighted,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load graph: %v\n", err)
		os.Exit(1)
	}

	if *save != "" {
		if err := graphio.SaveFile(*save, loaded.Graph, graphio.DetectFormat(*save)); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Failed to save graph: %v\n", err)
			os.Exit(1)
		}
		logger.Info("graph saved", logging.Path(*save))
	}

	engine := algorithms.NewEngine(
		algorithms.WithLogger(logger),
		algorithms.WithMetrics(registry),
		algorithms.WithWorkers(cfg.Workers),
	)
	result, err := engine.Run(loaded.Graph, selector)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %s failed: %v\n", selector.Kind(), err)
		os.Exit(1)
	}

	if err := render.Result(os.Stdout, loaded.Graph, result); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	if !result.Converged() {
		fmt.Fprintf(os.Stderr, "⚠️  %s stopped at the iteration cap after %d iterations\n", selector.Kind(), result.Iterations())
	}

	if *metricsFile != "" {
		if err := registry.WriteToFile(*metricsFile); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Failed to write metrics: %v\n", err)
			os.Exit(1)
		}
	}
}

func isSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
