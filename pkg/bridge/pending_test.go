package bridge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============== 恰好一次终结测试 ==============

// 源多次终结时，消费方恰好观察到一次，其余被丢弃
func TestResolveExactlyOnce(t *testing.T) {
	p := NewPending[string]()

	assert.True(t, p.Resolve("first"))
	assert.False(t, p.Resolve("second"))
	assert.False(t, p.Fail(errors.New("late error")))

	value, err := p.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", value)
	assert.Equal(t, int64(2), p.Dropped())
}

func TestFailWrapsResolutionError(t *testing.T) {
	p := NewPending[int]()

	errBoom := errors.New("boom")
	require.True(t, p.Fail(errBoom))

	_, err := p.Await(context.Background())
	require.Error(t, err)

	var re *ResolutionError
	require.ErrorAs(t, err, &re)
	assert.ErrorIs(t, err, errBoom)
	assert.False(t, IsCanceled(err))
}

// 源一直不终结：消费方保持待决，直到被取消
func TestPendingUntilCanceled(t *testing.T) {
	p := NewPending[int]()

	select {
	case <-p.Done():
		t.Fatal("must stay pending without a resolution")
	case <-time.After(20 * time.Millisecond):
	}
	assert.False(t, p.Resolved())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := p.Await(ctx)
	require.Error(t, err)
	assert.True(t, IsCanceled(err))
}

// ============== 取消测试 ==============

// 取消幂等：对已终结或已取消的操作调用是空操作，不报错
func TestCancelIdempotent(t *testing.T) {
	p := NewPending[int]()

	assert.True(t, p.Cancel())
	assert.False(t, p.Cancel())

	resolved := NewPending[int]()
	resolved.Resolve(1)
	assert.False(t, resolved.Cancel())
}

// 取消后源的迟到终结被丢弃，不投递也不报错
func TestLateResolutionAfterCancelDiscarded(t *testing.T) {
	p := NewPending[int]()

	require.True(t, p.Cancel())
	assert.False(t, p.Resolve(42))

	_, err := p.Await(context.Background())
	assert.True(t, IsCanceled(err))
	assert.Equal(t, int64(1), p.Dropped())
}

// 消费方撤回兴趣时触发取消钩子，尽力取消底层源
func TestAwaitCtxCancelInvokesOnCancel(t *testing.T) {
	p := NewPending[int]()

	canceled := make(chan struct{})
	p.SetOnCancel(func() { close(canceled) })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Await(ctx)
	assert.True(t, IsCanceled(err))

	select {
	case <-canceled:
	case <-time.After(time.Second):
		t.Fatal("cancel hook not invoked")
	}
}

// 取消与真实终结竞争：无论谁胜出，消费方都只观察到一个终结结果
func TestCancelRaceSingleOutcome(t *testing.T) {
	for i := 0; i < 100; i++ {
		p := NewPending[int]()

		go p.Resolve(7)
		go p.Cancel()

		value, err := p.Await(context.Background())
		if err != nil {
			assert.True(t, IsCanceled(err))
		} else {
			assert.Equal(t, 7, value)
		}
	}
}

func TestDoneAndResolved(t *testing.T) {
	p := NewPending[int]()
	assert.False(t, p.Resolved())

	p.Resolve(1)
	assert.True(t, p.Resolved())

	select {
	case <-p.Done():
	default:
		t.Fatal("done channel must be closed after resolution")
	}
}
