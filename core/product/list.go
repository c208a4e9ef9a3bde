package product

import "sync"

// Outcome is the result of a fenced reconciliation.
type Outcome int

const (
	Applied Outcome = iota
	Missing         // no entry with that ID; nothing changed
	Stale           // a newer intent already reconciled that ID; nothing changed
)

// List mirrors the last known server state of the catalog.
// Every entry has a non-zero ID and IDs are unique. The zero value is an empty List.
type List struct {
	mu    sync.RWMutex
	items []Product

	// ticket of the last intent reconciled per ID
	applied map[int]uint64
}

// NewList returns a List holding items (see Reset).
func NewList(items ...Product) *List {
	l := &List{applied: make(map[int]uint64)}
	l.Reset(items)
	return l
}

// Items returns a copy of the current sequence.
func (l *List) Items() []Product {
	l.mu.RLock()
	defer l.mu.RUnlock()

	items := make([]Product, len(l.items))
	copy(items, l.items)
	return items
}

func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

func (l *List) Get(id int) (Product, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if i := l.index(id); i >= 0 {
		return l.items[i], true
	}
	return Product{}, false
}

// Reset replaces the whole sequence, keeping the server order.
// Records without an ID and repeated IDs are skipped.
func (l *List) Reset(items []Product) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reset(0, items)
}

// ResetFenced is Reset for a load dispatched with ticket: every kept entry counts as
// reconciled by that ticket, so replies of older intents are discarded afterwards.
func (l *List) ResetFenced(ticket uint64, items []Product) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reset(ticket, items)
}

// Insert appends p. It returns false (and changes nothing) if p has no ID or its ID is taken.
func (l *List) Insert(p Product) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.insert(0, p)
}

// Replace swaps the entry matching p.ID with p. A missing ID is a no-op.
func (l *List) Replace(p Product) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.index(p.ID)
	if i < 0 {
		return false
	}
	l.items[i] = p
	return true
}

// Remove deletes the entry with id. A missing ID is a no-op.
func (l *List) Remove(id int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.index(id)
	if i < 0 {
		return false
	}
	l.items = append(l.items[:i:i], l.items[i+1:]...)
	delete(l.applied, id)
	return true
}

// ReplaceFenced is Replace for an intent dispatched with ticket: the replacement is
// discarded if an intent with a newer ticket has already reconciled the same ID.
func (l *List) ReplaceFenced(ticket uint64, p Product) Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.index(p.ID)
	if i < 0 {
		return Missing
	}
	if last, ok := l.applied[p.ID]; ok && last > ticket {
		return Stale
	}
	l.items[i] = p
	l.markApplied(p.ID, ticket)
	return Applied
}

// InsertFenced is Insert for an intent dispatched with ticket.
func (l *List) InsertFenced(ticket uint64, p Product) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.insert(ticket, p)
}

// NextID returns an ID not used by any entry, for records the server returned without one.
func (l *List) NextID() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	max := 0
	for _, p := range l.items {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}

func (l *List) insert(ticket uint64, p Product) bool {
	if p.ID == 0 || l.index(p.ID) >= 0 {
		return false
	}
	l.items = append(l.items, p)
	l.markApplied(p.ID, ticket)
	return true
}

func (l *List) reset(ticket uint64, items []Product) {
	seen := make(map[int]bool, len(items))
	l.items = make([]Product, 0, len(items))
	l.applied = make(map[int]uint64, len(items))
	for _, p := range items {
		if p.ID == 0 || seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		l.items = append(l.items, p)
		l.markApplied(p.ID, ticket)
	}
}

// markApplied records ticket as the last intent reconciled for id.
// The zero ticket is the unfenced one and records nothing.
func (l *List) markApplied(id int, ticket uint64) {
	if ticket == 0 {
		return
	}
	if l.applied == nil {
		l.applied = make(map[int]uint64)
	}
	l.applied[id] = ticket
}

func (l *List) index(id int) int {
	for i, p := range l.items {
		if p.ID == id {
			return i
		}
	}
	return -1
}
