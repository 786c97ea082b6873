package participation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"hackafrica-web/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkerFunc func(ctx context.Context, id string) (bool, error)

func (f checkerFunc) CheckParticipation(ctx context.Context, id string) (bool, error) {
	return f(ctx, id)
}

func hackathons(n int) []models.Hackathon {
	out := make([]models.Hackathon, n)
	for i := range out {
		out[i].ID = fmt.Sprintf("h%d", i)
	}
	return out
}

func TestCheckAllHasOneEntryPerHackathon(t *testing.T) {
	list := hackathons(10)
	api := checkerFunc(func(_ context.Context, id string) (bool, error) {
		if id == "h3" {
			return true, nil
		}
		return false, errors.New("backend exploded")
	})

	status, err := CheckAll(context.Background(), api, list, 3)
	require.NoError(t, err)

	assert.Len(t, status, 10)
	assert.True(t, status["h3"])
	for _, h := range list {
		_, ok := status[h.ID]
		assert.True(t, ok, h.ID)
	}
}

func TestCheckAllRespectsLimit(t *testing.T) {
	var inFlight, peak int32
	api := checkerFunc(func(context.Context, string) (bool, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return true, nil
	})

	status, err := CheckAll(context.Background(), api, hackathons(12), 2)
	require.NoError(t, err)

	assert.Len(t, status, 12)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestCheckAllStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var mu sync.Mutex
	calls := 0
	api := checkerFunc(func(context.Context, string) (bool, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		cancel()
		return true, nil
	})

	status, err := CheckAll(ctx, api, hackathons(5), 1)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, status, 5)
	assert.Equal(t, 1, calls)
	for id, v := range status {
		assert.False(t, v, id)
	}
}

func TestCheckAllEmptyList(t *testing.T) {
	status, err := CheckAll(context.Background(), checkerFunc(nil), nil, 0)
	require.NoError(t, err)
	assert.Empty(t, status)
}

func TestOf(t *testing.T) {
	status := map[string]bool{"a": true, "b": false}

	assert.Equal(t, Participating, Of(status, "a"))
	assert.Equal(t, NotParticipating, Of(status, "b"))
	assert.Equal(t, Unknown, Of(status, "c"))
	assert.Equal(t, "participating", Participating.String())
	assert.Equal(t, "checking", Checking.String())
}
