package isolate

import (
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// Executor 执行上下文抽象
// 决定一段回调在哪个 goroutine 上运行
type Executor interface {
	// Execute 提交 fn 到该执行上下文
	Execute(fn func())
}

// ExecutorFunc 函数式 Executor，便于快速适配
type ExecutorFunc func(fn func())

// Execute 实现 Executor 接口
func (f ExecutorFunc) Execute(fn func()) {
	f(fn)
}

// GoExecutor 默认执行上下文
// 每个回调一个新 goroutine，对应通用工作池语义
type GoExecutor struct{}

// Execute 实现 Executor 接口
func (GoExecutor) Execute(fn func()) {
	go fn()
}

// ═══════════════════════════════════════════════════════════════════════════
// SerialExecutor 固定串行执行上下文
// ═══════════════════════════════════════════════════════════════════════════

// SerialExecutor 单 goroutine 串行执行上下文
//
// 所有提交的回调在同一个固定 goroutine 上按提交顺序执行，
// 对应 UI 亲和线程这类"完成通知必须回到特定上下文"的场景。
type SerialExecutor struct {
	name  string
	tasks chan func()

	// 生命周期控制
	done    chan struct{}
	stopped atomic.Bool
	wg      sync.WaitGroup

	logger *slog.Logger
}

// SerialExecutorConfig 串行执行上下文配置
type SerialExecutorConfig struct {
	// QueueSize 任务队列大小
	QueueSize int
	// Logger 自定义日志器
	Logger *slog.Logger
}

// DefaultSerialExecutorConfig 默认配置
func DefaultSerialExecutorConfig() *SerialExecutorConfig {
	return &SerialExecutorConfig{
		QueueSize: 256,
		Logger:    nil,
	}
}

// NewSerialExecutor 创建串行执行上下文
func NewSerialExecutor(name string) *SerialExecutor {
	return NewSerialExecutorWithConfig(name, DefaultSerialExecutorConfig())
}

// NewSerialExecutorWithConfig 使用配置创建串行执行上下文
func NewSerialExecutorWithConfig(name string, config *SerialExecutorConfig) *SerialExecutor {
	if config == nil {
		config = DefaultSerialExecutorConfig()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e := &SerialExecutor{
		name:   name,
		tasks:  make(chan func(), config.QueueSize),
		done:   make(chan struct{}),
		logger: logger,
	}

	e.wg.Add(1)
	go e.loop()

	e.logger.Debug("serial executor started", "executor", name)
	return e
}

// Name 返回执行上下文名称
func (e *SerialExecutor) Name() string {
	return e.name
}

// Execute 实现 Executor 接口
// 已关闭的执行上下文丢弃提交的回调
func (e *SerialExecutor) Execute(fn func()) {
	if e.stopped.Load() {
		return
	}
	select {
	case e.tasks <- fn:
	case <-e.done:
	}
}

// Shutdown 关闭执行上下文
// 队列中剩余的回调会被执行完再退出
func (e *SerialExecutor) Shutdown() {
	if !e.stopped.CompareAndSwap(false, true) {
		return
	}
	close(e.done)
	e.wg.Wait()
	e.logger.Debug("serial executor stopped", "executor", e.name)
}

// loop 串行任务循环
func (e *SerialExecutor) loop() {
	defer e.wg.Done()

	for {
		select {
		case fn := <-e.tasks:
			e.run(fn)
		case <-e.done:
			// 清空剩余任务
			for {
				select {
				case fn := <-e.tasks:
					e.run(fn)
				default:
					return
				}
			}
		}
	}
}

// run 执行单个回调
func (e *SerialExecutor) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("panic in serial executor task",
				"executor", e.name,
				"error", r,
				"stack", string(debug.Stack()))
		}
	}()
	fn()
}
