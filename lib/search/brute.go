package search

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/unclesp1d3r/swsfsearch/lib/display"
	"github.com/unclesp1d3r/swsfsearch/lib/keyspace"
	"github.com/unclesp1d3r/swsfsearch/lib/matcher"
	"github.com/unclesp1d3r/swsfsearch/runstate"
)

// BruteForceOptions configures BruteForce.
type BruteForceOptions struct {
	Common

	MinLength int    // MinLength is the shortest code length, prefix included.
	MaxLength int    // MaxLength is the longest code length, prefix included.
	Prefix    string // Prefix every code must start with. Case is ignored.
	Workers   int    // Workers is the number of goroutines; values below 1 mean 1.
}

// BruteForce checks every code of the configured lengths and prefix. The
// index space is split into one contiguous range per worker; workers share the
// target set, the results file and the counters.
//
// Validation failures are returned before the results file is touched. When
// ctx is cancelled every worker stops at its next sampling boundary and the
// partial summary is returned together with the context error. Matches found
// before that point are already on disk.
func BruteForce(ctx context.Context, opts BruteForceOptions) (*Summary, error) {
	space, err := keyspace.NewSearchSpace(opts.MinLength, opts.MaxLength, opts.Prefix)
	if err != nil {
		return nil, err
	}

	targets, err := matcher.NewTargetSet(opts.Targets)
	if err != nil {
		return nil, err
	}

	if space.ExceedsGameLimit() {
		display.GameLimitExceeded(space)
	}

	results, err := openResults(opts.OutFile, matcher.Header(targets, opts.MinLength, opts.MaxLength))
	if err != nil {
		return nil, err
	}

	ranges := space.Partition(opts.Workers)
	display.SearchStarting(space, targets, len(ranges))
	runstate.State.SetActivity(runstate.ActivitySearching)

	m := matcher.New(opts.matcherConfig(targets, results, matcher.NewTracker(space.Total())))

	g, gctx := errgroup.WithContext(ctx)
	for _, rng := range ranges {
		g.Go(func() error {
			return m.Run(gctx, keyspace.NewCursor(space, rng))
		})
	}

	err = g.Wait()
	if err != nil && ctx.Err() != nil {
		err = ctx.Err()
	}

	return finish(m, results, err)
}
