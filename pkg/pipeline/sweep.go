package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"freqfilter/pkg/filter"
)

// Selections expands an image index, a set of kinds and a set of cutoff
// indices into every combination, kinds outermost.
func Selections(imageIndex int, kinds []filter.Kind, cutoffIndices []int) []Selection {
	sels := make([]Selection, 0, len(kinds)*len(cutoffIndices))
	for _, k := range kinds {
		for _, c := range cutoffIndices {
			sels = append(sels, Selection{ImageIndex: imageIndex, Kind: k, CutoffIndex: c})
		}
	}
	return sels
}

// Sweep runs every selection over a pool of Options.NumWorkers goroutines.
// Each run owns its grids and spectra, so runs are independent; results
// are returned in the order of sels. The first failing run cancels the rest.
func (p *Pipeline) Sweep(ctx context.Context, sels []Selection) ([]*Result, error) {
	results := make([]*Result, len(sels))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.NumWorkers)

	for i, sel := range sels {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := p.Run(sel)
			if err != nil {
				return fmt.Errorf("sweep run %d (%s, index %d): %w", i, sel.Kind, sel.CutoffIndex, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
