// Package notice carries transient user-visible messages (the toast
// equivalent) from stores and services to whatever surface the user is
// looking at: the TUI status line or a CLI command's output.
package notice

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// Level classifies a notice for display.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// Notice is a single transient message.
type Notice struct {
	ID      string
	Level   Level
	Message string
	Time    time.Time
}

// Msg is the tea.Msg delivered to the TUI for each notice.
type Msg struct {
	Notice Notice
}

// Bus is a bounded fan-in of notices. Publishing never blocks; when
// the buffer is full the oldest unconsumed notice is dropped.
type Bus struct {
	mu sync.Mutex
	ch chan Notice
}

// NewBus creates a bus with a small fixed buffer.
func NewBus() *Bus {
	return &Bus{ch: make(chan Notice, 32)}
}

// Publish enqueues a notice.
func (b *Bus) Publish(level Level, message string) {
	n := Notice{
		ID:      uuid.New().String(),
		Level:   level,
		Message: message,
		Time:    time.Now(),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for {
		select {
		case b.ch <- n:
			return
		default:
			// Buffer full: drop the oldest and retry.
			select {
			case <-b.ch:
			default:
			}
		}
	}
}

// Info publishes an informational notice.
func (b *Bus) Info(message string) { b.Publish(LevelInfo, message) }

// Success publishes a success notice.
func (b *Bus) Success(message string) { b.Publish(LevelSuccess, message) }

// Error publishes an error notice.
func (b *Bus) Error(message string) { b.Publish(LevelError, message) }

// TryNext returns the next pending notice without blocking.
func (b *Bus) TryNext() (Notice, bool) {
	select {
	case n := <-b.ch:
		return n, true
	default:
		return Notice{}, false
	}
}

// Wait returns a tea.Cmd that blocks until the next notice arrives and
// delivers it as a Msg. Call it again after each Msg to keep listening.
func (b *Bus) Wait() tea.Cmd {
	return func() tea.Msg {
		return Msg{Notice: <-b.ch}
	}
}
