package scheduler

import (
	"sync"
	"time"

	"eventrsvp/internal/domain"
)

type notifiedKey struct {
	eventID int64
	email   string
}

// notifiedSet tracks (event, recipient) pairs already reminded within the
// current horizon. Entries expire once the event's start time has passed, so
// the set stays bounded by the number of upcoming events.
type notifiedSet struct {
	mu      sync.Mutex
	entries map[notifiedKey]time.Time
}

func newNotifiedSet() *notifiedSet {
	return &notifiedSet{entries: make(map[notifiedKey]time.Time)}
}

// mark records the pair and returns true if it was not yet present.
// A false return means the recipient was already reminded for this event.
func (n *notifiedSet) mark(event *domain.Event, email string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	key := notifiedKey{eventID: event.ID, email: email}
	if _, ok := n.entries[key]; ok {
		return false
	}
	startsAt := time.Time{}
	if event.Date != nil {
		startsAt = *event.Date
	}
	n.entries[key] = startsAt
	return true
}

// unmark removes the pair, making it eligible again (used when a send fails).
func (n *notifiedSet) unmark(event *domain.Event, email string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.entries, notifiedKey{eventID: event.ID, email: email})
}

// expire drops entries whose event start time is before now.
func (n *notifiedSet) expire(now time.Time) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for key, startsAt := range n.entries {
		if startsAt.Before(now) {
			delete(n.entries, key)
		}
	}
}

// len reports the current number of tracked pairs.
func (n *notifiedSet) len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.entries)
}
