package search

import (
	"context"

	"github.com/unclesp1d3r/swsfsearch/lib/display"
	"github.com/unclesp1d3r/swsfsearch/lib/downloader"
	"github.com/unclesp1d3r/swsfsearch/lib/matcher"
	"github.com/unclesp1d3r/swsfsearch/lib/scramble"
	"github.com/unclesp1d3r/swsfsearch/lib/wordlist"
	"github.com/unclesp1d3r/swsfsearch/runstate"
)

// DictionaryOptions configures Dictionary.
type DictionaryOptions struct {
	Common

	Wordlist  string // Wordlist is a local path or an http(s) URL.
	Checksum  string // Checksum is the expected MD5 of a remote wordlist. Optional.
	CacheDir  string // CacheDir is where remote wordlists are stored.
	Encoding  string // Encoding is the wordlist's WHATWG encoding label. Empty means UTF-8.
	MinLength int    // MinLength drops shorter lines.
	MaxLength int    // MaxLength drops longer lines; 0 means no limit.
	Count     bool   // Count pre-scans the wordlist so progress has a total.
}

// Dictionary checks every wordlist line that passes the length filter, in file
// order, on a single worker. Lines are trimmed and lengths are counted in
// characters. The wordlist is opened before the results file is created so a
// bad path leaves previous results alone.
func Dictionary(ctx context.Context, opts DictionaryOptions) (*Summary, error) {
	filter := wordlist.LengthFilter{Min: opts.MinLength, Max: opts.MaxLength}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	targets, err := matcher.NewTargetSet(opts.Targets)
	if err != nil {
		return nil, err
	}

	if _, err := wordlist.ResolveEncoding(opts.Encoding); err != nil {
		return nil, err
	}

	path := opts.Wordlist
	if downloader.IsRemote(path) {
		path = downloader.CachePath(opts.CacheDir, opts.Wordlist)
		if err := downloader.DownloadFile(ctx, opts.Wordlist, path, opts.Checksum); err != nil {
			return nil, err
		}
	}

	var total uint64
	if opts.Count {
		total, err = wordlist.CountLines(path, opts.Encoding, filter)
		if err != nil {
			return nil, err
		}

		display.LinesCounted(path, total)
	}

	reader, err := wordlist.Open(path, opts.Encoding)
	if err != nil {
		return nil, err
	}

	defer func() { _ = reader.Close() }()

	results, err := openResults(opts.OutFile, matcher.Header(targets, opts.MinLength, opts.MaxLength))
	if err != nil {
		return nil, err
	}

	display.DictionaryStarting(path, targets, opts.MinLength, opts.MaxLength)
	runstate.State.SetActivity(runstate.ActivitySearching)

	m := matcher.New(opts.matcherConfig(targets, results, matcher.NewTracker(total)))
	err = m.Run(ctx, &lineSource{reader: reader, filter: filter})

	return finish(m, results, err)
}

// lineSource adapts a wordlist reader to matcher.Source, skipping lines the filter rejects.
type lineSource struct {
	reader *wordlist.Reader
	filter wordlist.LengthFilter
}

func (s *lineSource) Next() bool {
	for s.reader.Next() {
		if s.filter.Accept(s.reader.Line()) {
			return true
		}
	}

	return false
}

func (s *lineSource) Candidate() string {
	return s.reader.Line()
}

func (s *lineSource) Digest() scramble.Digest {
	return scramble.Sum(s.reader.Line())
}

func (s *lineSource) Err() error {
	return s.reader.Err()
}
