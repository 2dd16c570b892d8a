package tetris

import (
	"sync"

	"github.com/google/uuid"
)

// EventType categorizes engine notifications.
type EventType uint8

const (
	EventReset EventType = iota
	EventLocked
	EventLinesCleared
	EventLevelUp
	EventGameOver
)

func (t EventType) String() string {
	switch t {
	case EventReset:
		return "reset"
	case EventLocked:
		return "locked"
	case EventLinesCleared:
		return "lines_cleared"
	case EventLevelUp:
		return "level_up"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event records a state transition for frontends (sound cues, overlays).
// Fields not relevant to Type are zero.
type Event struct {
	Type  EventType
	Kind  Kind
	Lines int
	Level int
	Score int
}

// maxPendingEvents bounds the buffer when no frontend drains it.
const maxPendingEvents = 256

// IDGenerator produces game identifiers, one per reset.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 game ids.
type UUIDv7Generator struct{}

func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedIDs hands out predetermined ids, then repeats the last one.
// Safe for concurrent use.
type FixedIDs struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedIDs creates a generator returning ids in order.
func NewFixedIDs(ids ...string) *FixedIDs {
	return &FixedIDs{ids: ids}
}

func (f *FixedIDs) Generate() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.ids) == 0 {
		return ""
	}
	id := f.ids[min(f.idx, len(f.ids)-1)]
	f.idx++
	return id
}
