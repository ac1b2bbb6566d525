package notice

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishAndTryNext(t *testing.T) {
	bus := NewBus()

	bus.Success("Logged out successfully")
	bus.Error("Server error. Please try again later.")

	first, ok := bus.TryNext()
	require.True(t, ok)
	assert.Equal(t, LevelSuccess, first.Level)
	assert.Equal(t, "Logged out successfully", first.Message)
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.Time.IsZero())

	second, ok := bus.TryNext()
	require.True(t, ok)
	assert.Equal(t, LevelError, second.Level)

	_, ok = bus.TryNext()
	assert.False(t, ok)
}

func TestTryNextEmpty(t *testing.T) {
	bus := NewBus()

	n, ok := bus.TryNext()
	assert.False(t, ok)
	assert.Zero(t, n)
}

func TestPublishDropsOldestWhenFull(t *testing.T) {
	bus := NewBus()

	for i := 0; i < 40; i++ {
		bus.Info(fmt.Sprintf("notice %d", i))
	}

	var got []string
	for {
		n, ok := bus.TryNext()
		if !ok {
			break
		}
		got = append(got, n.Message)
	}

	require.Len(t, got, 32)
	assert.Equal(t, "notice 8", got[0])
	assert.Equal(t, "notice 39", got[len(got)-1])
}

func TestWaitDeliversMsg(t *testing.T) {
	bus := NewBus()
	bus.Info("Welcome back, Asha!")

	msg := bus.Wait()()
	noticeMsg, ok := msg.(Msg)
	require.True(t, ok)
	assert.Equal(t, "Welcome back, Asha!", noticeMsg.Notice.Message)
	assert.Equal(t, LevelInfo, noticeMsg.Notice.Level)
}

func TestLevelHelpers(t *testing.T) {
	bus := NewBus()

	bus.Info("a")
	bus.Success("b")
	bus.Error("c")

	levels := []Level{}
	for {
		n, ok := bus.TryNext()
		if !ok {
			break
		}
		levels = append(levels, n.Level)
	}
	assert.Equal(t, []Level{LevelInfo, LevelSuccess, LevelError}, levels)
}
