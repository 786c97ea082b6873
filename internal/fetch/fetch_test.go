package fetch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadReady(t *testing.T) {
	r := Load(context.Background(), "numbers", func(context.Context) ([]int, error) {
		return []int{1, 2}, nil
	})

	assert.Equal(t, Ready, r.State)
	assert.True(t, r.Ok())
	assert.Equal(t, []int{1, 2}, r.Data)
	assert.NoError(t, r.Err)
}

func TestLoadFailed(t *testing.T) {
	boom := errors.New("boom")
	r := Load(context.Background(), "numbers", func(context.Context) (int, error) {
		return 0, boom
	})

	assert.Equal(t, Failed, r.State)
	assert.ErrorIs(t, r.Err, boom)
}

func TestLoadDiscardsDataWhenContextEnds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := Load(ctx, "numbers", func(context.Context) (int, error) {
		cancel()
		return 42, nil
	})

	assert.Equal(t, Failed, r.State)
	assert.Zero(t, r.Data)
	assert.ErrorIs(t, r.Err, context.Canceled)
}

func TestLoadSkipsCallOnDeadContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false

	r := Load(ctx, "numbers", func(context.Context) (int, error) {
		called = true
		return 1, nil
	})

	assert.False(t, called)
	assert.Equal(t, Failed, r.State)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "failed", Failed.String())
}
