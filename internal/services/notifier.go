package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type EventKind string

const (
	EventTaskCreated     EventKind = "task_created"
	EventTaskDeleted     EventKind = "task_deleted"
	EventTaskRescheduled EventKind = "task_rescheduled"
	EventStatusChanged   EventKind = "status_changed"
	EventVacationChanged EventKind = "vacation_changed"
	EventRoleChanged     EventKind = "role_changed"
)

// TaskEvent is a "something changed" signal pushed to connected clients.
type TaskEvent struct {
	ID     string    `json:"id"`
	Kind   EventKind `json:"kind"`
	TaskID uint64    `json:"task_id,omitempty"`
	UserID uint64    `json:"user_id,omitempty"`
	At     time.Time `json:"at"`
}

// Notifier fans TaskEvents out to subscribers. Publishing never blocks: a
// subscriber that cannot keep up loses events rather than stalling the
// request path.
type Notifier struct {
	mu   sync.Mutex
	subs map[uint64]chan TaskEvent
	next uint64
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[uint64]chan TaskEvent)}
}

// Publish delivers the event to every subscriber, fire-and-forget.
func (n *Notifier) Publish(kind EventKind, taskID, userID uint64) {
	event := TaskEvent{
		ID:     uuid.NewString(),
		Kind:   kind,
		TaskID: taskID,
		UserID: userID,
		At:     time.Now().UTC(),
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribe registers a listener. The returned cancel func removes it and
// closes the channel.
func (n *Notifier) Subscribe(buffer int) (<-chan TaskEvent, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan TaskEvent, buffer)

	n.mu.Lock()
	id := n.next
	n.next++
	n.subs[id] = ch
	n.mu.Unlock()

	cancel := func() {
		n.mu.Lock()
		if _, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(ch)
		}
		n.mu.Unlock()
	}
	return ch, cancel
}
