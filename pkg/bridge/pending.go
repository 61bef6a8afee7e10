package bridge

import (
	"context"
	"sync"
	"sync/atomic"
)

// Pending 在途异步操作
//
// 桥接中一次异步工作单元的规范内部表示：一个一次性终结单元。
// 终结标志（resolved）从未置位到置位的转换恰好发生一次，
// 之后的任何终结尝试都是空操作——不会二次投递，也不会报错。
//
// 终结有三条路径：[Pending.Resolve]（成功值）、[Pending.Fail]（错误）、
// [Pending.Cancel]（消费方撤回兴趣）。三者以原子 CAS 竞争，先到先得，
// 真实源和取消路径之间的竞态不可能双重触发。
type Pending[T any] struct {
	// 终结标志，CAS 置位，胜者独占写入权
	resolved atomic.Bool

	// 终结信号，胜者写完结果后关闭
	done chan struct{}

	// 终结结果，仅 CAS 胜者写入，done 关闭后对读者可见
	value T
	err   error

	// 终结后被丢弃的重复/迟到投递计数
	dropped atomic.Int64

	// 取消钩子
	mu       sync.Mutex
	onCancel func()
}

// NewPending 创建在途操作
func NewPending[T any]() *Pending[T] {
	return &Pending[T]{
		done: make(chan struct{}),
	}
}

// SetOnCancel 设置取消钩子
// [Pending.Cancel] 胜出时调用 fn，用于尽力取消底层源。
// 应在把 Pending 交给消费方之前设置
func (p *Pending[T]) SetOnCancel(fn func()) {
	p.mu.Lock()
	p.onCancel = fn
	p.mu.Unlock()
}

// Resolve 以成功值终结
// 返回是否胜出；已终结时是空操作，计入丢弃计数
func (p *Pending[T]) Resolve(value T) bool {
	if !p.resolved.CompareAndSwap(false, true) {
		p.dropped.Add(1)
		return false
	}
	p.value = value
	close(p.done)
	return true
}

// Fail 以错误终结
// 返回是否胜出；已终结时是空操作，计入丢弃计数
func (p *Pending[T]) Fail(err error) bool {
	if !p.resolved.CompareAndSwap(false, true) {
		p.dropped.Add(1)
		return false
	}
	p.err = err
	close(p.done)
	return true
}

// Cancel 以取消信号终结
//
// 幂等：对已终结或已取消的操作调用是空操作，不报错。
// 胜出时调用取消钩子，尽力取消底层源；此后源的迟到终结被丢弃，
// 不会投递，也不视为错误
func (p *Pending[T]) Cancel() bool {
	if !p.resolved.CompareAndSwap(false, true) {
		return false
	}
	p.err = &Canceled{}
	close(p.done)

	p.mu.Lock()
	fn := p.onCancel
	p.mu.Unlock()
	if fn != nil {
		fn()
	}
	return true
}

// Await 挂起等待终结结果
//
// ctx 结束视为消费方撤回兴趣：触发 [Pending.Cancel] 后返回取消信号
// （若取消与真实终结竞争失败，则返回已胜出的终结结果）。
// 源错误包装为 [*ResolutionError] 返回
func (p *Pending[T]) Await(ctx context.Context) (T, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	select {
	case <-p.done:
	case <-ctx.Done():
		p.Cancel()
		<-p.done
	}

	var zero T
	if p.err != nil {
		if IsCanceled(p.err) {
			return zero, p.err
		}
		return zero, &ResolutionError{Err: p.err}
	}
	return p.value, nil
}

// Done 返回终结信号通道
func (p *Pending[T]) Done() <-chan struct{} {
	return p.done
}

// Resolved 检查是否已终结
func (p *Pending[T]) Resolved() bool {
	return p.resolved.Load()
}

// Dropped 返回终结后被丢弃的投递次数
func (p *Pending[T]) Dropped() int64 {
	return p.dropped.Load()
}
