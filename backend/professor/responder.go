// Package professor answers learner questions. The mock responder picks a
// canned reply after a short delay and keeps no state about courses.
package professor

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vamsidulam/aiprofessor-hub/backend/models"
)

var ErrEmptyMessage = errors.New("message is empty")

const greeting = "Hello! I'm your AI Professor. I'm here to help you learn and answer any questions you have about your courses. What would you like to know?"

var replies = []string{
	"That's a great question! Let me explain this concept step by step.",
	"I can help you with that. This is a common area where students need clarification.",
	"Excellent! You're thinking like a true learner. Here's how I'd approach this...",
	"This is an important topic. Let me break it down into simpler terms for you.",
	"I see you're making great progress! Let me provide some additional insights.",
}

type Responder interface {
	Greeting() models.ChatMessage
	Reply(ctx context.Context, message string) (models.ChatMessage, error)
}

type MockResponder struct {
	Delay time.Duration
	Now   func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewMockResponder(delay time.Duration) *MockResponder {
	return &MockResponder{
		Delay: delay,
		Now:   time.Now,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *MockResponder) Greeting() models.ChatMessage {
	return r.message(greeting)
}

func (r *MockResponder) Reply(ctx context.Context, message string) (models.ChatMessage, error) {
	if strings.TrimSpace(message) == "" {
		return models.ChatMessage{}, ErrEmptyMessage
	}

	if r.Delay > 0 {
		timer := time.NewTimer(r.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return models.ChatMessage{}, ctx.Err()
		case <-timer.C:
		}
	}

	r.mu.Lock()
	text := replies[r.rnd.Intn(len(replies))]
	r.mu.Unlock()

	return r.message(text), nil
}

func (r *MockResponder) message(text string) models.ChatMessage {
	return models.ChatMessage{
		ID:        uuid.New().String(),
		Type:      models.SenderProfessor,
		Message:   text,
		Timestamp: r.Now(),
	}
}
