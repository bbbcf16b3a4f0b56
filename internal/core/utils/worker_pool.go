package utils

import "sync"

type CompletedTask[T any] struct {
	Index  int
	Result T
	Error  error
}

// RunInPool runs worker over inputs using at most maxWorkers goroutines. The
// returned channel yields one CompletedTask per input, tagged with the input's
// index, and is closed once every input is processed.
func RunInPool[In any, Out any](worker func(In) (Out, error), inputs []In, maxWorkers int) <-chan CompletedTask[Out] {
	completed := make(chan CompletedTask[Out], len(inputs))

	workers := max(min(len(inputs), maxWorkers), 1)

	queue := make(chan int, len(inputs))
	for i := range inputs {
		queue <- i
	}
	close(queue)

	go func() {
		wg := sync.WaitGroup{}
		wg.Add(workers)

		for w := 0; w < workers; w++ {
			go func() {
				defer wg.Done()

				for i := range queue {
					res, err := worker(inputs[i])
					completed <- CompletedTask[Out]{Index: i, Result: res, Error: err}
				}
			}()
		}

		wg.Wait()

		close(completed)
	}()

	return completed
}
