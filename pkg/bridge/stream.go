package bridge

import (
	"context"
	"sync"
)

// Event 流事件
// Err 非 nil 表示错误事件，否则为值事件
type Event[T any] struct {
	Value T
	Err   error
}

// Source 可订阅的异步流
//
// Subscribe 返回事件通道和退订函数。退订后不再投递事件，
// 事件通道由源侧关闭。退订函数必须幂等
type Source[T any] interface {
	Subscribe(ctx context.Context) (events <-chan Event[T], unsubscribe func())
}

// ═══════════════════════════════════════════════════════════════════════════
// Stream 单次终结流
// ═══════════════════════════════════════════════════════════════════════════

// Stream 至多发出一个成功或一个错误事件的流
// 由 [StreamCallback] 创建，内部以 [Pending] 约束单次发射
type Stream[T any] struct {
	events  chan Event[T]
	pending *Pending[T]
}

// Events 返回事件通道
// 至多收到一个事件，随后通道关闭；取消时直接关闭，无事件
func (s *Stream[T]) Events() <-chan Event[T] {
	return s.events
}

// Cancel 取消流
// 幂等；取消后源的迟到发射被丢弃
func (s *Stream[T]) Cancel() {
	if s.pending.Cancel() {
		close(s.events)
	}
}

// Canceled 检查流是否已被取消
func (s *Stream[T]) Canceled() bool {
	select {
	case <-s.pending.Done():
		return IsCanceled(s.pending.err)
	default:
		return false
	}
}

// Subscribe 实现 Source 接口，使单次终结流可以继续被 [AwaitFirst] 消费
func (s *Stream[T]) Subscribe(_ context.Context) (<-chan Event[T], func()) {
	return s.events, s.Cancel
}

// ═══════════════════════════════════════════════════════════════════════════
// ChannelSource 通道适配源
// ═══════════════════════════════════════════════════════════════════════════

// ChannelSource 将普通值通道适配为 [Source]
// 通道关闭视为流自然结束（事件通道随之关闭，无错误事件）
type ChannelSource[T any] struct {
	C <-chan T
}

// Subscribe 实现 Source 接口
func (cs ChannelSource[T]) Subscribe(ctx context.Context) (<-chan Event[T], func()) {
	if ctx == nil {
		ctx = context.Background()
	}

	out := make(chan Event[T])
	stop := make(chan struct{})
	var once sync.Once
	unsubscribe := func() {
		once.Do(func() { close(stop) })
	}

	go func() {
		defer close(out)
		for {
			select {
			case v, ok := <-cs.C:
				if !ok {
					return
				}
				select {
				case out <- Event[T]{Value: v}:
				case <-stop:
					return
				case <-ctx.Done():
					return
				}
			case <-stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, unsubscribe
}
