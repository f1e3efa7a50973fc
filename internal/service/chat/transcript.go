package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yuhanzhou/foxden/internal/model/chat"
)

// Transcript owns the ordered turn history of one conversation. It is
// append-only: turns are never deleted or rewritten, only Reset discards
// them when the user explicitly starts over. Reads return copies so the
// UI can render while a reply is being integrated.
type Transcript struct {
	mu        sync.RWMutex
	id        string
	startedAt time.Time
	turns     []chat.Turn
}

// NewTranscript starts an empty conversation.
func NewTranscript() *Transcript {
	return &Transcript{
		id:        uuid.NewString(),
		startedAt: time.Now().UTC(),
		turns:     make([]chat.Turn, 0, 16),
	}
}

// ID identifies the conversation for logging.
func (t *Transcript) ID() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.id
}

// StartedAt reports when the conversation began.
func (t *Transcript) StartedAt() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.startedAt
}

// Append adds a turn to the end of the transcript.
func (t *Transcript) Append(turn chat.Turn) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.turns = append(t.turns, turn)
}

// Context returns the turns in insertion order, suitable for submission to
// the provider as conversational context.
func (t *Transcript) Context() []chat.Turn {
	t.mu.RLock()
	defer t.mu.RUnlock()

	copied := make([]chat.Turn, len(t.turns))
	copy(copied, t.turns)
	return copied
}

// Len reports the number of turns.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.turns)
}

// Reset discards the history and assigns a fresh conversation identity.
func (t *Transcript) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.id = uuid.NewString()
	t.startedAt = time.Now().UTC()
	t.turns = t.turns[:0]
}
