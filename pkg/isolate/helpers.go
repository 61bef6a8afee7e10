package isolate

import (
	"context"
)

// ═══════════════════════════════════════════════════════════════════════════
// Context 工具函数
// ═══════════════════════════════════════════════════════════════════════════

// MergeContexts 合并两个 context，任一取消则返回的 context 也取消
// 这在需要同时监听多个取消信号时很有用
//
// 用法示例:
//
//	// callerCtx: 调用方 context
//	// containerCtx: 容器生命周期 context
//	mergedCtx := isolate.MergeContexts(callerCtx, containerCtx)
func MergeContexts(parent, child context.Context) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	if child == nil {
		return parent
	}

	ctx, cancel := context.WithCancel(parent)

	go func() {
		select {
		case <-parent.Done():
			cancel()
		case <-child.Done():
			cancel()
		case <-ctx.Done():
			// 已取消，退出 goroutine
		}
	}()

	return ctx
}

// MergeContextsWithCancel 合并 context 并返回取消函数
// 调用者负责在不再需要时调用 cancel 以释放资源
func MergeContextsWithCancel(parent, child context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if child == nil {
		return context.WithCancel(parent)
	}

	ctx, cancel := context.WithCancel(parent)

	go func() {
		select {
		case <-parent.Done():
			cancel()
		case <-child.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// ═══════════════════════════════════════════════════════════════════════════
// 通道工具函数
// ═══════════════════════════════════════════════════════════════════════════

// TrySend 尝试非阻塞发送到通道
// 如果通道为 nil 或已满，返回 false
func TrySend[T any](ch chan<- T, value T) bool {
	if ch == nil {
		return false
	}
	select {
	case ch <- value:
		return true
	default:
		return false
	}
}

// TrySendWithContext 带 context 的尝试发送
// 如果 context 取消或通道满，返回 false
func TrySendWithContext[T any](ctx context.Context, ch chan<- T, value T) bool {
	if ch == nil {
		return false
	}
	select {
	case ch <- value:
		return true
	case <-ctx.Done():
		return false
	default:
		return false
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// 错误处理工具
// ═══════════════════════════════════════════════════════════════════════════

// IsContextError 检查错误是否为 context 相关错误
func IsContextError(err error) bool {
	return err == context.Canceled || err == context.DeadlineExceeded
}

// IgnoreContextError 如果是 context 错误则返回 nil
func IgnoreContextError(err error) error {
	if IsContextError(err) {
		return nil
	}
	return err
}
