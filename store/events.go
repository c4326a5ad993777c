// ABOUTME: Change notifications emitted by entity stores
// ABOUTME: Lets observers such as the activity feed follow every mutation
package store

// Kind names the entity collection an event came from.
type Kind string

const (
	KindContact Kind = "contact"
	KindDeal    Kind = "deal"
	KindTask    Kind = "task"
)

// Verb names the mutation.
type Verb string

const (
	VerbCreated       Verb = "created"
	VerbUpdated       Verb = "updated"
	VerbDeleted       Verb = "deleted"
	VerbStatusChanged Verb = "status-changed"
	VerbStageChanged  Verb = "stage-changed"
)

// Event describes one applied mutation.
type Event struct {
	Kind   Kind
	Verb   Verb
	ID     int
	Label  string
	Detail string
}

// Observer receives events synchronously, after the mutation has been applied.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) { f(e) }

type notifier struct {
	observer Observer
}

// SetObserver replaces the store's observer. nil disables notifications.
func (n *notifier) SetObserver(o Observer) {
	n.observer = o
}

func (n *notifier) emit(e Event) {
	if n.observer != nil {
		n.observer.Observe(e)
	}
}
