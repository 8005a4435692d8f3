package experiments

import (
	"context"
	"errors"
	"fmt"

	"lanes/engine"
	"lanes/experiments/metrics"
	"lanes/meta"
	"lanes/render"

	"github.com/rs/zerolog/log"
)

type Option func(x *Experiment)

// Experiment runs a number of iterations, each evaluating every strategy on a
// freshly sampled layout.
type Experiment struct {
	runner     engine.Runner
	sampler    *Sampler
	writer     *metrics.Writer
	collector  metrics.Collector
	setup      metrics.Setup
	iterations int
	render     bool
	frames     int
	skipErrors bool
}

func WithIterations(iterations int) Option {
	return func(x *Experiment) {
		if iterations > 0 {
			x.iterations = iterations
		}
	}
}

// WithWriter stores setup, records and summary, and the animations when
// rendering is on.
func WithWriter(writer *metrics.Writer, setup metrics.Setup) Option {
	return func(x *Experiment) {
		x.writer = writer
		x.setup = setup
	}
}

func WithRendering(enabled bool, frames int) Option {
	return func(x *Experiment) {
		x.render = enabled
		if frames > 0 {
			x.frames = frames
		}
	}
}

// WithSkipErrors makes a failed iteration count as skipped instead of
// aborting the experiment.
func WithSkipErrors(skip bool) Option {
	return func(x *Experiment) {
		x.skipErrors = skip
	}
}

func NewExperiment(runner engine.Runner, sampler *Sampler, options ...Option) *Experiment {
	x := &Experiment{
		runner:     runner,
		sampler:    sampler,
		collector:  metrics.NewCollector(),
		iterations: meta.ITERATIONS,
		frames:     render.DefaultFrames,
	}
	for _, option := range options {
		option(x)
	}
	return x
}

// ErrAborted marks a run stopped because its context ended.
var ErrAborted = errors.New("experiment aborted")

// Run executes every iteration and returns the summary with the failure tally.
// The records and summary of finished iterations are written even when an
// iteration stops the run.
func (x *Experiment) Run(ctx context.Context) (metrics.Summary, error) {
	x.collector.Start()
	if x.writer != nil {
		x.setup.Iterations = x.iterations
		if err := x.writer.WriteSetup(x.setup); err != nil {
			return metrics.Summary{}, err
		}
		log.Info().Msgf("storing results in %s", x.writer.Dir())
	}

	log.Info().Msgf("starting experiment with %d iterations...", x.iterations)

	records, err := x.iterate(ctx)
	summary := x.collector.Complete()
	if err != nil {
		log.Error().Err(err).Msgf("stopped after %d completed iterations", summary.Tally.Iterations)
	} else {
		log.Info().Msg("completed experiment")
	}

	if werr := x.store(records, summary); werr != nil {
		return summary, errors.Join(err, werr)
	}
	return summary, err
}

func (x *Experiment) iterate(ctx context.Context) ([]metrics.IterationRecord, error) {
	records := []metrics.IterationRecord{}

	for i := 1; i <= x.iterations; i++ {
		if ctx.Err() != nil {
			return records, fmt.Errorf("%w before iteration %d: %w", ErrAborted, i, ctx.Err())
		}

		layout := x.sampler.Next()
		log.Info().Msgf("starting iteration %d of %d with ambulance=%s car1=%s car2=%s...",
			i, x.iterations, layout.Ambulance, layout.Car1, layout.Car2)

		outcomes, err := x.runner.Run(ctx, layout)
		if err != nil {
			if ctx.Err() != nil {
				return records, fmt.Errorf("%w at iteration %d: %w", ErrAborted, i, err)
			}
			if !x.skipErrors {
				return records, fmt.Errorf("iteration %d: %w", i, err)
			}
			log.Error().Err(err).Msgf("skipping iteration %d", i)
			x.collector.AddSkipped()
			continue
		}

		iterationRecords := make([]metrics.IterationRecord, 0, len(outcomes))
		for _, outcome := range outcomes {
			record, err := x.record(i, outcome)
			if err != nil {
				return records, err
			}
			iterationRecords = append(iterationRecords, record)
		}

		x.collector.AddIteration()
		for _, record := range iterationRecords {
			x.collector.AddOutcome(engine.Strategy(record.Strategy), record.Failure, record.Collision)
		}
		records = append(records, iterationRecords...)

		log.Info().Msgf("completed iteration %d of %d", i, x.iterations)
	}

	return records, nil
}

func (x *Experiment) store(records []metrics.IterationRecord, summary metrics.Summary) error {
	if x.writer == nil {
		return nil
	}
	if err := x.writer.WriteIterationRecords(records); err != nil {
		return err
	}
	log.Info().Msg("stored iteration records")
	if err := x.writer.WriteSummary(summary); err != nil {
		return err
	}
	log.Info().Msg("stored summary")
	return nil
}

func (x *Experiment) record(i int, outcome engine.Outcome) (metrics.IterationRecord, error) {
	s := outcome.Scenario
	it := render.Iteration{
		Title:      outcome.Strategy.Title(),
		Layout:     s.Layout,
		Car1Action: s.Car1Action,
		Car2Action: s.Car2Action,
		Failure:    outcome.Failure,
		Frames:     x.frames,
	}

	var animation string
	var res render.Result
	if x.render && x.writer != nil {
		animation = fmt.Sprintf("iteration-%03d-%s.gif", i, outcome.Strategy)
		var err error
		res, err = render.AnimateFile(x.writer.Path(animation), it)
		if err != nil {
			return metrics.IterationRecord{}, err
		}
	} else {
		res = render.Simulate(it)
	}

	log.Info().Msgf("iteration %d %s: car1 %s -> %s, car2 %s -> %s, failure=%t collision=%t",
		i, outcome.Strategy, s.Car1, s.Car1Action, s.Car2, s.Car2Action, outcome.Failure, res.Collision)

	return metrics.IterationRecord{
		Iteration:   i,
		Strategy:    string(outcome.Strategy),
		Ambulance:   s.Ambulance.String(),
		Car1Side:    s.Car1.String(),
		Car2Side:    s.Car2.String(),
		Car1Action:  s.Car1Action.String(),
		Car2Action:  s.Car2Action.String(),
		Car1Message: outcome.Car1.Message,
		Car2Message: outcome.Car2.Message,
		Failure:     outcome.Failure,
		Collision:   res.Collision,
		Animation:   animation,
	}, nil
}

// IsAborted reports whether err stopped the experiment because its context
// ended rather than because an iteration failed. A model call that timed out
// on a live context is a failure, not an abort.
func IsAborted(err error) bool {
	return errors.Is(err, ErrAborted)
}
