package isolate

import (
	"context"
	"errors"
	"log/slog"
)

// ErrContainerClosed 容器已关闭错误
// 关闭后的新准入请求返回此错误，已持有令牌的操作不受影响
var ErrContainerClosed = errors.New("isolate: container closed")

// admission 准入令牌操作接口
// OpContext 通过它释放/重取容器令牌，不依赖容器的状态类型参数
type admission interface {
	releaseToken()
	reacquireToken()
}

// OpContext 操作执行上下文
// 每次 Invoke 创建一个，提供挂起点和取消信号
type OpContext struct {
	ctx context.Context
	adm admission

	// 本次操作的挂起次数（操作内单线程访问，无需同步）
	suspensions int
}

// Context 获取本次操作的 context
// 容器关闭或调用方取消时该 context 结束
func (oc *OpContext) Context() context.Context {
	return oc.ctx
}

// Suspend 显式挂起点
//
// 释放准入令牌，执行 f，返回前重新取得令牌。f 执行期间其他排队
// 操作可以进入容器，并能看到本操作挂起前的状态修改。
//
// 注意：恢复后挂起前读到的状态可能已过期，需要时应重新校验。
// f 的错误原样返回；即使 f panic，令牌也会被重新取得后再传播。
func (oc *OpContext) Suspend(f func(ctx context.Context) error) error {
	oc.suspensions++
	oc.adm.releaseToken()
	defer oc.adm.reacquireToken()
	return f(oc.ctx)
}

// Suspensions 返回本次操作已经历的挂起次数
func (oc *OpContext) Suspensions() int {
	return oc.suspensions
}

// Option 容器配置选项
type Option func(*options)

type options struct {
	logger   *slog.Logger
	executor Executor
}

func defaultOptions() *options {
	return &options{
		logger:   slog.Default(),
		executor: GoExecutor{},
	}
}

// WithLogger 设置自定义日志器
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithExecutor 绑定完成回调的执行上下文
// InvokeAsync 的完成回调会投递到该 Executor 上执行
func WithExecutor(executor Executor) Option {
	return func(o *options) {
		if executor != nil {
			o.executor = executor
		}
	}
}
