package bridge

import (
	"errors"
	"fmt"
)

// ResolutionError 源失败包装错误
// 底层源（回调错误、流失败）报告的错误桥接到挂起/恢复侧时包装为此类型，
// 恰好投递一次
type ResolutionError struct {
	// Err 底层源报告的原始错误
	Err error
}

// Error 实现 error 接口
func (e *ResolutionError) Error() string {
	return fmt.Sprintf("bridge: source failed: %v", e.Err)
}

// Unwrap 支持 errors.Is / errors.As 链式匹配
func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// Canceled 取消信号
// 不是失败：表示消费方在终结前撤回了兴趣，是一种独立的终结状态
type Canceled struct{}

// Error 实现 error 接口
func (e *Canceled) Error() string {
	return "bridge: operation canceled"
}

// IsCanceled 检查错误是否为取消信号
func IsCanceled(err error) bool {
	var c *Canceled
	return errors.As(err, &c)
}
