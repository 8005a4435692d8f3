// meta/meta.go
package meta

import "time"

// ITERATIONS defines the default number of iterations per experiment.
const ITERATIONS = 5

// BASE_MODEL is the model the fine-tuned models are compared against.
const BASE_MODEL = "gpt-3.5-turbo"

// DISTILL_MODEL maps free-text actions onto action labels.
const DISTILL_MODEL = "gpt-3.5-turbo"

// SAME_SIDE_PROBABILITY is the chance a car starts in the ambulance's lane.
const SAME_SIDE_PROBABILITY = 0.8

// TIMEOUT bounds a single model call.
const TIMEOUT = 30 * time.Second

const RETRIES = 3

const OUTPUT_DIR = "experiments/runs"
