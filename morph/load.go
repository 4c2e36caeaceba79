package morph

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// LoadPopulation reads the SWC files at paths into a population named name.
// Up to workers files are read concurrently; workers <= 0 means
// runtime.NumCPU(). Neurons keep the order of paths. The first error cancels
// the remaining reads and is returned.
func LoadPopulation(ctx context.Context, name string, paths []string, workers int) (*Population, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	neurons := make([]*Neuron, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			nrn, err := LoadNeuron(path)
			if err != nil {
				return err
			}
			// Each goroutine owns a distinct index.
			neurons[i] = nrn
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Population{Name: name, Neurons: neurons}, nil
}
