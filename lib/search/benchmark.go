package search

import (
	"time"

	"github.com/unclesp1d3r/swsfsearch/lib/display"
	"github.com/unclesp1d3r/swsfsearch/lib/scramble"
)

// DefaultBenchmarkIterations is the number of times each benchmark code is hashed.
const DefaultBenchmarkIterations = 500_000

// BenchmarkCodes are known game codes used to measure digest throughput.
var BenchmarkCodes = []string{ //nolint:gochecknoglobals // fixed benchmark corpus
	"password", "pnyrcade", "headhunt", "director", "quentin",
	"maggie", "jarjar", "nohud", "darkside", "credits",
}

// digestSink keeps the benchmark loop from being optimized away.
var digestSink scramble.Digest //nolint:gochecknoglobals // benchmark sink

// Benchmark hashes every code iterations times and reports the throughput.
func Benchmark(codes []string, iterations int) display.BenchmarkResult {
	iterations = max(iterations, 1)

	var sink scramble.Digest

	start := time.Now()

	for _, code := range codes {
		for range iterations {
			sink ^= scramble.Sum(code)
		}
	}

	result := display.BenchmarkResult{
		Codes:      len(codes),
		Iterations: iterations,
		Elapsed:    time.Since(start),
	}

	digestSink = sink

	return result
}
