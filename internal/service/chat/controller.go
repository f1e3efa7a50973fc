package chat

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/yuhanzhou/foxden/internal/model/chat"
)

var (
	// ErrEmptyMessage reports a submission that was blank after trimming.
	// The transcript is untouched and no provider call is made.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrBusy reports a submission while a reply is still outstanding.
	ErrBusy = errors.New("a reply is still pending")
)

// Responder produces a reply for the supplied conversational context.
// history holds the prior turns in insertion order; the new user text is
// passed separately.
type Responder interface {
	Respond(ctx context.Context, history []chat.Turn, userText string) (string, error)
	RespondStream(ctx context.Context, history []chat.Turn, userText string, onDelta func(string)) (string, error)
}

// Recorder persists a completed question/answer exchange.
type Recorder interface {
	Record(ctx context.Context, question, answer string) error
}

// Controller drives one conversation: it appends the user turn, calls the
// provider with the accumulated context, and integrates the reply. One
// submission may be outstanding at a time; overlapping submissions are
// rejected with ErrBusy rather than queued.
type Controller struct {
	mu   sync.Mutex
	busy bool

	transcript *Transcript
	responder  Responder
	recorder   Recorder

	// contextLimit bounds the number of prior turns sent per request.
	// Zero sends the full transcript.
	contextLimit int
}

// NewController wires a controller around a fresh transcript. recorder may
// be nil when exchange logging is disabled.
func NewController(responder Responder, recorder Recorder, contextLimit int) *Controller {
	return &Controller{
		transcript:   NewTranscript(),
		responder:    responder,
		recorder:     recorder,
		contextLimit: contextLimit,
	}
}

// Transcript exposes the conversation history for rendering.
func (c *Controller) Transcript() *Transcript {
	return c.transcript
}

// Submit sends the user text with accumulated context and returns the
// assistant turn. On provider failure the already-appended user turn stays:
// the transcript records what was asked even when no answer arrived.
func (c *Controller) Submit(ctx context.Context, text string) (chat.Turn, error) {
	return c.submit(ctx, text, nil)
}

// SubmitStream behaves like Submit but forwards partial reply chunks to
// onDelta as they arrive. The assistant turn is appended once, with the
// fully assembled reply.
func (c *Controller) SubmitStream(ctx context.Context, text string, onDelta func(string)) (chat.Turn, error) {
	return c.submit(ctx, text, onDelta)
}

// Reset discards the conversation and starts a new one. It is rejected
// while a reply is outstanding.
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrBusy
	}
	log.Printf("[chat] conversation %s reset after %s",
		c.transcript.ID(), time.Since(c.transcript.StartedAt()).Round(time.Second))
	c.transcript.Reset()
	return nil
}

func (c *Controller) submit(ctx context.Context, text string, onDelta func(string)) (chat.Turn, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return chat.Turn{}, ErrEmptyMessage
	}

	if err := c.begin(); err != nil {
		return chat.Turn{}, err
	}
	defer c.end()

	history := c.boundedContext()
	c.transcript.Append(chat.NewTurn(chat.RoleUser, text))

	var (
		reply string
		err   error
	)
	if onDelta != nil {
		reply, err = c.responder.RespondStream(ctx, history, text, onDelta)
	} else {
		reply, err = c.responder.Respond(ctx, history, text)
	}
	if err != nil {
		return chat.Turn{}, err
	}

	turn := chat.NewTurn(chat.RoleAssistant, reply)
	c.transcript.Append(turn)

	if c.recorder != nil {
		if recErr := c.recorder.Record(ctx, text, reply); recErr != nil {
			log.Printf("[chat] failed to record exchange for conversation %s: %v", c.transcript.ID(), recErr)
		}
	}

	return turn, nil
}

// begin moves the controller from Idle to AwaitingReply.
func (c *Controller) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrBusy
	}
	c.busy = true
	return nil
}

func (c *Controller) end() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

// boundedContext returns the prior turns to send with the next request,
// keeping only the most recent contextLimit turns when a bound is set.
func (c *Controller) boundedContext() []chat.Turn {
	turns := c.transcript.Context()
	if c.contextLimit <= 0 || len(turns) <= c.contextLimit {
		return turns
	}
	return turns[len(turns)-c.contextLimit:]
}
