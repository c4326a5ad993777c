// ABOUTME: In-memory activity feed for timeline tracking
// ABOUTME: Records store mutations as ULID-keyed entries, newest first, with a fixed capacity
package activity

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/harperreed/crmpro/store"
)

// DefaultCapacity bounds the feed when no capacity is given.
const DefaultCapacity = 100

// Entry is one recorded mutation.
type Entry struct {
	ID     string     `json:"id"`
	At     time.Time  `json:"at"`
	Kind   store.Kind `json:"kind"`
	Verb   store.Verb `json:"verb"`
	Object int        `json:"object_id"`
	Label  string     `json:"label"`
	Detail string     `json:"detail,omitempty"`
}

// Summary renders the entry as a one-line sentence.
func (e Entry) Summary() string {
	s := fmt.Sprintf("%s %q %s", e.Kind, e.Label, e.Verb)
	if e.Detail != "" {
		s += " (" + e.Detail + ")"
	}
	return s
}

// Feed keeps the most recent entries. It implements store.Observer.
type Feed struct {
	entries  []Entry
	capacity int
	now      func() time.Time
	entropy  *ulid.MonotonicEntropy
}

// NewFeed creates a feed holding at most capacity entries.
func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Feed{
		capacity: capacity,
		now:      time.Now,
		entropy:  ulid.Monotonic(rand.Reader, 0),
	}
}

// Observe records a store event.
func (f *Feed) Observe(e store.Event) {
	at := f.now()
	entry := Entry{
		ID:     ulid.MustNew(ulid.Timestamp(at), f.entropy).String(),
		At:     at,
		Kind:   e.Kind,
		Verb:   e.Verb,
		Object: e.ID,
		Label:  e.Label,
		Detail: e.Detail,
	}

	f.entries = append(f.entries, entry)
	if over := len(f.entries) - f.capacity; over > 0 {
		f.entries = append([]Entry(nil), f.entries[over:]...)
	}
}

// Recent returns up to n entries, newest first. n <= 0 returns everything.
func (f *Feed) Recent(n int) []Entry {
	if n <= 0 || n > len(f.entries) {
		n = len(f.entries)
	}
	out := make([]Entry, 0, n)
	for i := len(f.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, f.entries[i])
	}
	return out
}

func (f *Feed) Len() int {
	return len(f.entries)
}
