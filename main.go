package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"lanes/config"
	"lanes/distill"
	"lanes/engine"
	"lanes/experiments"
	"lanes/experiments/metrics"
	"lanes/llm"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `usage: lanes [flags] <car1_model> <car2_model>

Runs the emergency-vehicle lane yielding experiment between two fine-tuned
models and a base model.

flags:
`

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		if experiments.IsAborted(err) {
			log.Warn().Err(err).Msg("experiment aborted")
			os.Exit(130)
		}
		log.Error().Err(err).Msg("experiment failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cfg, err := parseArgs(args, os.Stderr)
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, config.ErrInvalidConfig)
	}
	zerolog.SetGlobalLevel(level)

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	provider, err := llm.NewProvider(llm.ProviderConfig{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Model:       cfg.Car1Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Timeout:     cfg.Timeout,
		Retries:     cfg.Retries,
	})
	if err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}
	client := llm.NewClient(provider,
		llm.WithTimeout(cfg.Timeout),
		llm.WithRetry(llm.ExponentialRetryConfig(cfg.Attempts(), cfg.RetryBaseDelay, cfg.RetryMaxDelay, true)),
		llm.WithSampling(cfg.Temperature, cfg.MaxTokens))
	defer client.Close()

	distiller := distill.New(client, cfg.DistillModel)
	e := engine.LocalEngine(client, distiller, cfg.Car1Model, cfg.Car2Model, cfg.BaseModel)

	writer, err := metrics.NewWriter(cfg.OutputDir)
	if err != nil {
		return err
	}
	setup := metrics.Setup{
		RunID:               writer.RunID(),
		Car1Model:           cfg.Car1Model,
		Car2Model:           cfg.Car2Model,
		BaseModel:           cfg.BaseModel,
		DistillModel:        cfg.DistillModel,
		SameSideProbability: cfg.SameSideProbability,
		Seed:                seed,
		StartTime:           time.Now(),
	}

	x := experiments.NewExperiment(e, experiments.NewSampler(seed, cfg.SameSideProbability),
		experiments.WithIterations(cfg.Iterations),
		experiments.WithWriter(writer, setup),
		experiments.WithRendering(cfg.Render, cfg.Frames),
		experiments.WithSkipErrors(cfg.OnError == config.OnErrorSkip))

	summary, err := x.Run(ctx)
	printTally(stdout, summary.Tally)
	return err
}

func printTally(w io.Writer, tally metrics.Tally) {
	fmt.Fprintf(w, "Fine-tuned model failures (with communication): %d\n", tally.WithComm)
	fmt.Fprintf(w, "Fine-tuned model failures (no communication): %d\n", tally.NoComm)
	fmt.Fprintf(w, "Base model failures: %d\n", tally.Base)
}

// parseArgs builds the configuration from defaults, an optional file, the
// environment and finally the command line. Flags may appear before or after
// the two model names.
func parseArgs(args []string, output io.Writer) (config.Config, error) {
	fs := flag.NewFlagSet("lanes", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}

	defaults := config.Default()
	configPath := fs.String("config", "", "Path to a YAML configuration file")
	iterations := fs.Int("iterations", defaults.Iterations, "Number of iterations")
	baseModel := fs.String("base-model", defaults.BaseModel, "Base model to compare against")
	seed := fs.Uint64("seed", 0, "Seed for the lane layouts, 0 picks one from the clock")
	out := fs.String("out", defaults.OutputDir, "Directory for run results")
	render := fs.Bool("render", defaults.Render, "Write an animation per strategy and iteration")
	frames := fs.Int("frames", defaults.Frames, "Frames per animation")
	onError := fs.String("on-error", defaults.OnError, "What a failed iteration does: abort or skip")
	logLevel := fs.String("log-level", defaults.LogLevel, "Log level")

	positional := []string{}
	for {
		if err := fs.Parse(args); err != nil {
			return config.Config{}, err
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		positional = append(positional, args[0])
		args = args[1:]
	}

	cfg := defaults
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return cfg, err
		}
	}
	cfg.ApplyEnv()

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "iterations":
			cfg.Iterations = *iterations
		case "base-model":
			cfg.BaseModel = *baseModel
		case "seed":
			cfg.Seed = *seed
		case "out":
			cfg.OutputDir = *out
		case "render":
			cfg.Render = *render
		case "frames":
			cfg.Frames = *frames
		case "on-error":
			cfg.OnError = strings.ToLower(*onError)
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	switch len(positional) {
	case 0:
	case 2:
		cfg.Car1Model, cfg.Car2Model = positional[0], positional[1]
	default:
		fs.Usage()
		return cfg, fmt.Errorf("expected two model names, got %d: %w", len(positional), config.ErrInvalidConfig)
	}

	if err := cfg.Validate(); err != nil {
		fs.Usage()
		return cfg, err
	}
	return cfg, nil
}
