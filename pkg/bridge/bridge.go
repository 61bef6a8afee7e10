package bridge

import (
	"context"
	"sync"

	"github.com/lwmacct/260826-go-pkg-isolate/pkg/isolate"
)

// CompletionFunc 完成回调
// 遗留回调式 API 通过它报告一次成功值或一个错误
type CompletionFunc[T any] func(value T, err error)

// CallbackFunc 回调式异步源
// 接受一个完成回调的函数，是遗留网络客户端等回调式 API 的统一形状。
// 契约上 complete 只应被调用一次；多调的行为异常源由桥接器兜底
type CallbackFunc[T any] func(complete CompletionFunc[T])

// ═══════════════════════════════════════════════════════════════════════════
// 回调 → 挂起/恢复
// ═══════════════════════════════════════════════════════════════════════════

// FromCallback 将回调式异步源装配为 [Pending]
//
// fn 同步执行，由它负责异步发起真正的工作。无论源把 complete
// （错误地）调用多少次，只有第一次胜出，其余被静默丢弃
func FromCallback[T any](fn CallbackFunc[T]) *Pending[T] {
	p := NewPending[T]()
	fn(func(value T, err error) {
		if err != nil {
			p.Fail(err)
			return
		}
		p.Resolve(value)
	})
	return p
}

// AwaitCallback 回调 → 挂起转换
//
// 包装回调式异步源，调用方挂起直到回调触发，以返回值或错误恢复。
// ctx 结束时尽力取消并返回 [*Canceled]，不会泄漏待决的回调闭包：
// 迟到的回调触发只会命中已终结的 [Pending] 并被丢弃
func AwaitCallback[T any](ctx context.Context, fn CallbackFunc[T]) (T, error) {
	return FromCallback(fn).Await(ctx)
}

// ═══════════════════════════════════════════════════════════════════════════
// 回调 → 流
// ═══════════════════════════════════════════════════════════════════════════

// StreamCallback 回调 → 流转换
//
// 包装回调式异步源，返回至多发出一个成功或一个错误事件随后终止的
// [Stream]。内部以 [Pending] 约束：只有终结竞争的胜者向事件通道
// 发射并关闭它，重复回调被丢弃
func StreamCallback[T any](fn CallbackFunc[T]) *Stream[T] {
	s := &Stream[T]{
		events:  make(chan Event[T], 1),
		pending: NewPending[T](),
	}
	fn(func(value T, err error) {
		if err != nil {
			if s.pending.Fail(err) {
				isolate.TrySend(s.events, Event[T]{Err: err})
				close(s.events)
			}
			return
		}
		if s.pending.Resolve(value) {
			isolate.TrySend(s.events, Event[T]{Value: value})
			close(s.events)
		}
	})
	return s
}

// ═══════════════════════════════════════════════════════════════════════════
// 流 → 挂起/恢复
// ═══════════════════════════════════════════════════════════════════════════

// AwaitFirst 流 → 挂起转换
//
// 订阅 src，以第一个事件为终结结果并立即退订：即使流还会自然产出
// 更多事件，也不再被处理。事件通道在无发射的情况下关闭（流自然
// 结束）或 ctx 结束时，返回 [*Canceled]
func AwaitFirst[T any](ctx context.Context, src Source[T]) (T, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	subCtx, cancelSub := context.WithCancel(ctx)
	events, unsub := src.Subscribe(subCtx)

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			cancelSub()
			unsub()
		})
	}
	defer unsubscribe()

	p := NewPending[T]()
	go func() {
		select {
		case ev, ok := <-events:
			if !ok {
				p.Cancel()
				return
			}
			if ev.Err != nil {
				p.Fail(ev.Err)
			} else {
				p.Resolve(ev.Value)
			}
			// 第一个结果已取走，立即终止订阅
			unsubscribe()
		case <-subCtx.Done():
			p.Cancel()
		}
	}()

	return p.Await(ctx)
}
