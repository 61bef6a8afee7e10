package isolate

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============== SerialExecutor 测试 ==============

func TestSerialExecutorOrdering(t *testing.T) {
	e := NewSerialExecutor("test")

	// 所有回调都在同一个 goroutine 上执行，无需加锁
	var order []int
	for i := 0; i < 100; i++ {
		i := i
		e.Execute(func() {
			order = append(order, i)
		})
	}
	e.Shutdown()

	require.Len(t, order, 100)
	for i, v := range order {
		assert.Equal(t, i, v, "submission order must be execution order")
	}
}

func TestSerialExecutorShutdownIdempotent(t *testing.T) {
	e := NewSerialExecutor("test")
	e.Shutdown()
	e.Shutdown()

	// 关闭后的提交被丢弃，不 panic
	e.Execute(func() { t.Error("must not run after shutdown") })
	time.Sleep(20 * time.Millisecond)
}

func TestSerialExecutorPanicRecovered(t *testing.T) {
	e := NewSerialExecutor("test")

	ran := make(chan struct{})
	e.Execute(func() { panic("boom") })
	e.Execute(func() { close(ran) })

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("executor loop died after panic")
	}
	e.Shutdown()
}

func TestGoExecutor(t *testing.T) {
	done := make(chan struct{})
	GoExecutor{}.Execute(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callback not executed")
	}
}

func TestExecutorFunc(t *testing.T) {
	ran := false
	ExecutorFunc(func(fn func()) { fn() }).Execute(func() { ran = true })
	assert.True(t, ran)
}

// ============== 执行上下文绑定测试 ==============

// 绑定 SerialExecutor 后，所有完成回调都投递到同一个固定 goroutine，
// 无锁计数在 race detector 下也必须干净
func TestInvokeAsyncCompletionAffinity(t *testing.T) {
	e := NewSerialExecutor("ui")
	defer e.Shutdown()

	c := New("account", Account{}, WithExecutor(e))
	defer c.Close()

	const n = 50
	var wg sync.WaitGroup
	completions := 0 // 仅在 executor goroutine 上访问

	for i := 0; i < n; i++ {
		wg.Add(1)
		c.InvokeAsync(context.Background(), func(_ *OpContext, s *Account) error {
			s.Balance++
			return nil
		}, func(err error) {
			assert.NoError(t, err)
			completions++
			wg.Done()
		})
	}
	wg.Wait()

	// 通过 executor 读取，保证可见性
	read := make(chan int, 1)
	e.Execute(func() { read <- completions })
	assert.Equal(t, n, <-read)

	balance, _ := Read(context.Background(), c, func(s *Account) int { return s.Balance })
	assert.Equal(t, n, balance)
}
