package isolate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============== Context 工具测试 ==============

func TestMergeContextsParentCancel(t *testing.T) {
	parent, cancelParent := context.WithCancel(context.Background())
	child := context.Background()

	merged := MergeContexts(parent, child)
	cancelParent()

	select {
	case <-merged.Done():
	case <-time.After(time.Second):
		t.Fatal("merged context not canceled with parent")
	}
}

func TestMergeContextsChildCancel(t *testing.T) {
	parent := context.Background()
	child, cancelChild := context.WithCancel(context.Background())

	merged := MergeContexts(parent, child)
	cancelChild()

	select {
	case <-merged.Done():
	case <-time.After(time.Second):
		t.Fatal("merged context not canceled with child")
	}
}

func TestMergeContextsNilArgs(t *testing.T) {
	merged := MergeContexts(nil, nil)
	require.NotNil(t, merged)
	assert.NoError(t, merged.Err())
}

func TestMergeContextsWithCancel(t *testing.T) {
	merged, cancel := MergeContextsWithCancel(context.Background(), context.Background())
	cancel()

	select {
	case <-merged.Done():
	case <-time.After(time.Second):
		t.Fatal("merged context not canceled by returned cancel func")
	}
}

// ============== 通道工具测试 ==============

func TestTrySend(t *testing.T) {
	ch := make(chan int, 1)
	assert.True(t, TrySend(ch, 1))
	assert.False(t, TrySend(ch, 2), "full channel")
	assert.False(t, TrySend[int](nil, 3), "nil channel")
	assert.Equal(t, 1, <-ch)
}

func TestTrySendWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	full := make(chan int, 1)
	full <- 0
	assert.False(t, TrySendWithContext(ctx, full, 1), "full channel, canceled context")

	ch := make(chan int, 1)
	assert.True(t, TrySendWithContext(context.Background(), ch, 2))
	assert.False(t, TrySendWithContext(context.Background(), nil, 3), "nil channel")
}

// ============== 错误工具测试 ==============

func TestIsContextError(t *testing.T) {
	assert.True(t, IsContextError(context.Canceled))
	assert.True(t, IsContextError(context.DeadlineExceeded))
	assert.False(t, IsContextError(errors.New("other")))
	assert.False(t, IsContextError(nil))
}

func TestIgnoreContextError(t *testing.T) {
	assert.NoError(t, IgnoreContextError(context.Canceled))
	err := errors.New("real")
	assert.Equal(t, err, IgnoreContextError(err))
}
