package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
)

const defaultFetchWorkers = 5

type fetchResult[R any] struct {
	Value R
	Err   error
}

// runFetchPool runs handler over items with at most width concurrent
// invocations. results[i] corresponds to items[i]. A failing or panicking
// handler taints only its own slot; siblings keep running.
func runFetchPool[I any, R any](
	ctx context.Context,
	items []I,
	width int,
	handler func(context.Context, I) (R, error),
) ([]fetchResult[R], error) {
	results := make([]fetchResult[R], len(items))
	if len(items) == 0 {
		return results, nil
	}

	if width <= 0 {
		width = defaultFetchWorkers
	}
	if width > len(items) {
		width = len(items)
	}

	pool, err := ants.NewPool(width)
	if err != nil {
		return nil, fmt.Errorf("create fetch pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i := range items {
		i := i
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			defer func() {
				if rec := recover(); rec != nil {
					results[i].Err = fmt.Errorf("fetch handler panicked: %v", rec)
				}
			}()

			value, handlerErr := handler(ctx, items[i])
			results[i] = fetchResult[R]{Value: value, Err: handlerErr}
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit fetch task: %w", err)
		}
	}
	workers.Wait()

	return results, nil
}
