package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/deeplinks/internal/logging"
	"github.com/yaklabco/deeplinks/pkg/dom"
	"github.com/yaklabco/deeplinks/pkg/page"
	"github.com/yaklabco/deeplinks/pkg/source"
)

// Runner opens a location's fragment against many documents.
type Runner struct {
	// Logger receives per-file debug output. Nil uses the logger carried by
	// the context passed to Find.
	Logger *log.Logger
}

// New creates a new Runner.
func New(logger *log.Logger) *Runner {
	return &Runner{Logger: logger}
}

// Find discovers documents under opts.Paths and opens location in each of
// them concurrently, the way a page loaded from that location would. It
// returns one FileOutcome per document, ordered by path, and aggregate stats.
func (r *Runner) Find(ctx context.Context, location string, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	logger := r.Logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	// Don't use more workers than files.
	if jobs > len(files) {
		jobs = len(files)
	}

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(ctx, logger, workCh, outCh, location, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers finish out of order.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

func worker(
	ctx context.Context,
	logger *log.Logger,
	workCh <-chan string,
	outCh chan<- FileOutcome,
	location string,
	opts Options,
) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := open(ctx, logger, path, location, opts)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// open parses one document and opens location in it.
func open(ctx context.Context, logger *log.Logger, path, location string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}

	doc, err := source.Load(ctx, path, opts.Source)
	if err != nil {
		logger.Debug("skipping document", logging.FieldPath, path, logging.FieldError, err)
		outcome.Error = err
		return outcome
	}
	outcome.Doc = doc

	sel := dom.NewSelection()
	sel.MaxRanges = opts.MaxRanges
	p := page.New(doc, sel, logger.With(logging.FieldPath, path))
	outcome.Outcome, outcome.ApplyErr = p.Open(location)
	return outcome
}
