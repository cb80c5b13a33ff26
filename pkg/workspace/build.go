package workspace

import (
	"context"

	"github.com/arthur-debert/pkgbundle/pkg/logging"
	"github.com/arthur-debert/pkgbundle/pkg/packages"
	"golang.org/x/sync/errgroup"
)

// Source builds a descriptor for a package location. *packages.Builder and
// *Cache both implement it.
type Source interface {
	Build(location string) (*packages.Descriptor, error)
}

// Result is the outcome of building one package.
type Result struct {
	Root       string
	Descriptor *packages.Descriptor
	Err        error
}

// Skipped reports a package that built without error but has no entry point.
func (r Result) Skipped() bool {
	return r.Err == nil && r.Descriptor == nil
}

// Summary counts results by outcome.
type Summary struct {
	Built   int `json:"built" yaml:"built" toml:"built"`
	Skipped int `json:"skipped" yaml:"skipped" toml:"skipped"`
	Failed  int `json:"failed" yaml:"failed" toml:"failed"`
}

// Summarize counts results by outcome.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch {
		case r.Err != nil:
			s.Failed++
		case r.Descriptor == nil:
			s.Skipped++
		default:
			s.Built++
		}
	}
	return s
}

// BuildAll builds every root with at most parallelism builds in flight.
// Results are in the order of roots. A failing package is recorded in its
// Result and does not stop the others; the returned error is only set when
// ctx is cancelled.
func BuildAll(ctx context.Context, source Source, roots []string, parallelism int) ([]Result, error) {
	logger := logging.GetLogger("workspace.build")
	done := logging.LogOperationStart(logger, "workspace build")
	defer done()

	results := make([]Result, len(roots))
	g, gctx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}

	for i, root := range roots {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = Result{Root: root, Err: err}
				return err
			}

			desc, err := source.Build(root)
			results[i] = Result{Root: root, Descriptor: desc, Err: err}
			if err != nil {
				logger.Debug().Err(err).Str("root", root).Msg("Package build failed")
			}
			return nil
		})
	}

	err := g.Wait()

	summary := Summarize(results)
	logger.Info().
		Int("built", summary.Built).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Msg("Workspace built")

	return results, err
}
