package model

// Status labels a queue item's outcome. Statuses stay mutable until the
// session ends: navigating back and choosing a different action overwrites
// the previous label.
type Status int

const (
	StatusPending Status = iota
	StatusMoved
	StatusSkipped
	StatusDeferred
)

// String returns the display form of a status.
func (s Status) String() string {
	switch s {
	case StatusMoved:
		return "moved"
	case StatusSkipped:
		return "skipped"
	case StatusDeferred:
		return "deferred"
	default:
		return "pending"
	}
}

// Item is one entry in the organizing queue.
type Item struct {
	// Path is the item's current location. Updated after a successful move
	// so that revisiting the item operates on the file where it now lives.
	Path   string
	Status Status
	// Destination holds the directory the item was moved to (StatusMoved)
	// or the failure reason (StatusDeferred).
	Destination string
	Reason      string
	// Preorganized marks items found in loaded history; they start out
	// skipped and are only present when the caller chose to surface them.
	Preorganized bool
}

// Queue owns the ordered items and the cursor for one organizing session.
// The cursor is clamped to [0, len-1]; item order never changes.
type Queue struct {
	items  []Item
	cursor int
}

// NewQueue builds a queue from the supplied paths, one item per distinct
// path in input order.
func NewQueue(paths []string) *Queue {
	return NewSessionQueue(paths, nil, false)
}

// NewSessionQueue builds a queue from the inputs, consulting the set of
// previously organized paths. When includeOrganized is false those inputs
// are dropped and the queue shrinks; otherwise they stay in place,
// pre-marked skipped and navigable.
func NewSessionQueue(paths []string, isOrganized func(string) bool, includeOrganized bool) *Queue {
	q := &Queue{}
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		if seen[p] {
			continue
		}
		seen[p] = true

		if isOrganized != nil && isOrganized(p) {
			if includeOrganized {
				q.items = append(q.items, Item{Path: p, Status: StatusSkipped, Preorganized: true})
			}
			continue
		}
		q.items = append(q.items, Item{Path: p})
	}
	return q
}

// Len returns the number of items.
func (q *Queue) Len() int {
	return len(q.items)
}

// Cursor returns the current cursor position.
func (q *Queue) Cursor() int {
	return q.cursor
}

// Items returns a copy of the item slice.
func (q *Queue) Items() []Item {
	out := make([]Item, len(q.items))
	copy(out, q.items)
	return out
}

// Current returns the item under the cursor, or nil for an empty queue.
func (q *Queue) Current() *Item {
	if len(q.items) == 0 {
		return nil
	}
	return &q.items[q.cursor]
}

// Next advances the cursor. Returns false when already on the last item,
// which is the session's end condition.
func (q *Queue) Next() bool {
	if q.cursor >= len(q.items)-1 {
		return false
	}
	q.cursor++
	return true
}

// Prev retreats the cursor, clamped at the first item.
func (q *Queue) Prev() bool {
	if q.cursor <= 0 {
		return false
	}
	q.cursor--
	return true
}

// MarkMoved records a successful move of the current item and updates its
// path to the new location.
func (q *Queue) MarkMoved(newPath, destination string) {
	it := q.Current()
	if it == nil {
		return
	}
	it.Status = StatusMoved
	it.Path = newPath
	it.Destination = destination
	it.Reason = ""
}

// MarkSkipped labels the current item skipped.
func (q *Queue) MarkSkipped() {
	it := q.Current()
	if it == nil {
		return
	}
	it.Status = StatusSkipped
	it.Destination = ""
	it.Reason = ""
}

// MarkDeferred labels the current item deferred with a reason.
func (q *Queue) MarkDeferred(reason string) {
	it := q.Current()
	if it == nil {
		return
	}
	it.Status = StatusDeferred
	it.Destination = ""
	it.Reason = reason
}

// Pending reports whether any item still awaits a decision.
func (q *Queue) Pending() bool {
	for i := range q.items {
		if q.items[i].Status == StatusPending {
			return true
		}
	}
	return false
}
