package coroutine

import (
	"context"
)

// Map 并行执行map操作，将输入切片中的每个元素应用函数并返回结果
// 结果顺序与输入顺序一致
func Map[T, R any](ctx context.Context, maxWorkers int, items []T, mapFunc func(T) (R, error)) []Result[R] {
	works := make([]WorkFunc[R], len(items))
	for i, item := range items {
		works[i] = func() (R, error) {
			return mapFunc(item)
		}
	}

	return NewCoroutinePool[R](maxWorkers).Execute(ctx, works)
}
