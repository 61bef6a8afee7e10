package isolate

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Container 隔离状态容器
// 独占持有一份 S 类型状态，所有访问经由准入令牌串行化
//
// 每个逻辑资源创建一个实例（如一个账户、一个缓存），在组合根构造，
// 以引用传递给所有调用方，不使用全局可变状态。
type Container[S any] struct {
	// 基本信息
	name string

	// 状态，仅持有准入令牌的操作可触碰
	state S

	// 准入令牌（容量 1），发送即取得，接收即释放
	token chan struct{}

	// 生命周期控制
	ctx    context.Context
	cancel context.CancelFunc
	isOpen atomic.Bool

	// 配置
	logger   *slog.Logger
	executor Executor

	// 统计信息
	stats *StatsCollector
}

// New 创建隔离状态容器
func New[S any](name string, initial S, opts ...Option) *Container[S] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	ctx, cancel := context.WithCancel(context.Background())

	c := &Container[S]{
		name:     name,
		state:    initial,
		token:    make(chan struct{}, 1),
		ctx:      ctx,
		cancel:   cancel,
		logger:   o.logger,
		executor: o.executor,
		stats:    NewStatsCollector(),
	}
	c.isOpen.Store(true)

	c.logger.Debug("container created", "container", name)
	return c
}

// Name 返回容器名称
func (c *Container[S]) Name() string {
	return c.name
}

// IsOpen 检查容器是否仍接受新操作
func (c *Container[S]) IsOpen() bool {
	return c.isOpen.Load()
}

// Invoke 提交一个状态操作并等待完成
//
// 同一时刻最多一个操作持有准入令牌。闭包内阻塞式等待不会释放令牌，
// 整段读-改-写不被打断；需要允许交错时使用 [OpContext.Suspend]。
//
// op 返回的错误原样透传，不回滚：出错前已完成的状态修改被保留。
func (c *Container[S]) Invoke(ctx context.Context, op func(oc *OpContext, s *S) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if err := c.acquire(ctx); err != nil {
		return err
	}
	defer c.release()

	// 操作 context：调用方取消或容器关闭时结束
	opCtx, cancelOp := MergeContextsWithCancel(ctx, c.ctx)
	defer cancelOp()

	oc := &OpContext{ctx: opCtx, adm: c}

	start := time.Now()
	err := op(oc, &c.state)
	c.stats.RecordCompleted(time.Since(start))

	if err != nil {
		c.stats.RecordError(err)
		c.logger.Debug("operation returned error", "container", c.name, "err", err)
	}
	return err
}

// InvokeAsync 异步提交状态操作
// 完成回调投递到容器绑定的 [Executor] 上执行，completion 可为 nil
func (c *Container[S]) InvokeAsync(ctx context.Context, op func(oc *OpContext, s *S) error, completion func(error)) {
	go func() {
		err := c.Invoke(ctx, op)
		if completion == nil {
			return
		}
		c.executor.Execute(func() { completion(err) })
	}()
}

// Nonisolated 执行纯函数操作
//
// 立即同步执行，不排队、不取准入令牌。fn 拿不到状态引用，
// 纯度由构造保证：它只能是自身参数的函数。
func (c *Container[S]) Nonisolated(fn func() error) error {
	c.stats.RecordNonisolated()
	return fn()
}

// Close 关闭容器
//
// 关闭后新的准入请求返回 [ErrContainerClosed]，当前持有令牌的操作
// 会运行完毕。不要在操作闭包内部调用 Close，会死锁。
func (c *Container[S]) Close() {
	if !c.isOpen.CompareAndSwap(true, false) {
		return
	}
	c.cancel()

	// 等待在途操作交还令牌
	c.token <- struct{}{}
	<-c.token

	c.logger.Debug("container closed", "container", c.name)
}

// Stats 获取统计快照
func (c *Container[S]) Stats() *ContainerStats {
	return c.stats.Stats()
}

// ═══════════════════════════════════════════════════════════════════════════
// 准入令牌
// ═══════════════════════════════════════════════════════════════════════════

// acquire 取得准入令牌，调用方取消或容器关闭时放弃等待
func (c *Container[S]) acquire(ctx context.Context) error {
	if !c.isOpen.Load() {
		return ErrContainerClosed
	}

	start := time.Now()
	select {
	case c.token <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	case <-c.ctx.Done():
		return ErrContainerClosed
	}

	// 等待期间容器可能已关闭
	if !c.isOpen.Load() {
		<-c.token
		return ErrContainerClosed
	}

	c.stats.RecordAdmitted(time.Since(start))
	return nil
}

// release 交还准入令牌
func (c *Container[S]) release() {
	<-c.token
}

// releaseToken 实现 admission 接口（挂起点释放）
func (c *Container[S]) releaseToken() {
	c.stats.RecordSuspension()
	<-c.token
}

// reacquireToken 实现 admission 接口（恢复前重取）
// 无条件等待：恢复的操作必须重新持有令牌才能继续触碰状态
func (c *Container[S]) reacquireToken() {
	c.token <- struct{}{}
}

// ═══════════════════════════════════════════════════════════════════════════
// 泛型捷径
// ═══════════════════════════════════════════════════════════════════════════

// Read 读取状态投影
// 经由与 Invoke 相同的准入路径，selector 不应修改状态
func Read[S, T any](ctx context.Context, c *Container[S], selector func(s *S) T) (T, error) {
	var out T
	err := c.Invoke(ctx, func(_ *OpContext, s *S) error {
		out = selector(s)
		return nil
	})
	return out, err
}

// Update 原子地读-改-写并返回一个值
//
// 用法示例:
//
//	withdrawn, err := isolate.Update(ctx, acct, func(s *Account) (bool, error) {
//	    if s.Balance < 30 {
//	        return false, fmt.Errorf("insufficient funds")
//	    }
//	    s.Balance -= 30
//	    return true, nil
//	})
func Update[S, T any](ctx context.Context, c *Container[S], fn func(s *S) (T, error)) (T, error) {
	var out T
	err := c.Invoke(ctx, func(_ *OpContext, s *S) error {
		var ferr error
		out, ferr = fn(s)
		return ferr
	})
	return out, err
}
