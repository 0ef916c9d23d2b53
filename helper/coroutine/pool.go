package coroutine

import (
	"context"
	"runtime"
	"sync"
)

// WorkFunc 表示一个带返回值的工作函数
type WorkFunc[T any] func() (T, error)

// Result 保存单个工作函数的结果，Index 与输入顺序一致
type Result[T any] struct {
	Index int
	Value T
	Err   error
}

// DefaultMaxWorkers 默认并发数
func DefaultMaxWorkers() int {
	return runtime.NumCPU()
}

// CoroutinePool 固定并发数的协程池
type CoroutinePool[T any] struct {
	maxWorkers int
}

// NewCoroutinePool 创建协程池，maxWorkers <= 0 时使用默认值
func NewCoroutinePool[T any](maxWorkers int) *CoroutinePool[T] {
	if maxWorkers <= 0 {
		maxWorkers = DefaultMaxWorkers()
	}
	return &CoroutinePool[T]{maxWorkers: maxWorkers}
}

// Execute 并发执行所有工作函数，结果按输入顺序返回
// ctx 取消后尚未开始的工作直接以 ctx.Err() 作为结果
func (p *CoroutinePool[T]) Execute(ctx context.Context, works []WorkFunc[T]) []Result[T] {
	results := make([]Result[T], len(works))
	if len(works) == 0 {
		return results
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := p.maxWorkers
	if workers > len(works) {
		workers = len(works)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					results[i] = Result[T]{Index: i, Err: err}
					continue
				}
				value, err := works[i]()
				results[i] = Result[T]{Index: i, Value: value, Err: err}
			}
		}()
	}

	for i := range works {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}
