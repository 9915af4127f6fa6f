package louvain

import (
	"runtime"
	"sync"

	"github.com/xueyiren/ModularityPruning/pkg/graph"
	"github.com/xueyiren/ModularityPruning/pkg/partition"
)

// SweepOptions controls the parallel resolution-parameter sweeps.
type SweepOptions struct {
	Workers   int // goroutines per pool; defaults to GOMAXPROCS
	ChunkSize int // parameter points per pool before the pool is recycled
	CacheSize int // bounded canonical-form cache size
}

func (o SweepOptions) withDefaults() SweepOptions {
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.ChunkSize <= 0 {
		o.ChunkSize = 100
	}
	if o.CacheSize <= 0 {
		o.CacheSize = 1000
	}
	return o
}

// SweepGammas runs the optimizer at every gamma and returns the set of
// distinct partitions encountered, keyed and deduplicated by canonical
// form. Worker invocations are independent; the pool is re-created per
// chunk to bound per-pool memory growth.
func SweepGammas(opt Optimizer, g *graph.Graph, gammas []float64, opts SweepOptions) (map[string]partition.Membership, error) {
	opts = opts.withDefaults()
	cache := partition.NewCanonicalCache(opts.CacheSize)
	unique := make(map[string]partition.Membership)

	run := func(gamma float64) (partition.Membership, error) {
		part, err := opt.Optimize(g, gamma)
		if err != nil {
			return nil, err
		}
		return part.Membership, nil
	}
	if err := sweep(gammas, opts, cache, unique, run); err != nil {
		return nil, err
	}
	return unique, nil
}

// SweepGammasOmegas runs the multilayer optimizer at every (gamma, omega)
// pair from the cross product of the two slices, deduplicating results by
// canonical form.
func SweepGammasOmegas(opt Optimizer, ml *graph.Multilayer, gammas, omegas []float64, opts SweepOptions) (map[string]partition.Membership, error) {
	opts = opts.withDefaults()
	cache := partition.NewCanonicalCache(opts.CacheSize)
	unique := make(map[string]partition.Membership)

	points := make([][2]float64, 0, len(gammas)*len(omegas))
	for _, gamma := range gammas {
		for _, omega := range omegas {
			points = append(points, [2]float64{gamma, omega})
		}
	}

	run := func(pt [2]float64) (partition.Membership, error) {
		part, err := opt.OptimizeMultilayer(ml, pt[0], pt[1])
		if err != nil {
			return nil, err
		}
		return part.Membership, nil
	}
	if err := sweep(points, opts, cache, unique, run); err != nil {
		return nil, err
	}
	return unique, nil
}

// sweep fans parameter points out to a bounded worker pool chunk by chunk,
// merging results as a canonical-form set. The first worker error aborts
// the sweep.
func sweep[T any](points []T, opts SweepOptions, cache *partition.CanonicalCache,
	unique map[string]partition.Membership, run func(T) (partition.Membership, error)) error {

	for start := 0; start < len(points); start += opts.ChunkSize {
		end := start + opts.ChunkSize
		if end > len(points) {
			end = len(points)
		}
		chunk := points[start:end]

		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			firstErr error
		)
		jobs := make(chan T)

		for w := 0; w < opts.Workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for point := range jobs {
					m, err := run(point)

					mu.Lock()
					if err != nil {
						if firstErr == nil {
							firstErr = err
						}
						mu.Unlock()
						continue
					}
					canonical := cache.Canonical(m)
					unique[partition.Key(canonical)] = canonical
					mu.Unlock()
				}
			}()
		}
		for _, point := range chunk {
			jobs <- point
		}
		close(jobs)
		wg.Wait()

		if firstErr != nil {
			return firstErr
		}
	}
	return nil
}
