package inmem

import (
	"context"
	"sync"

	"github.com/trezcool/lotus/core/people"
)

// Table is an in-memory people.Repository. Rows keep their insertion order,
// newest first for rows added through Prepend.
type Table struct {
	mutex   sync.RWMutex
	rows    map[people.Kind][]people.Record
	pkCount map[people.Kind]int
}

var _ people.Repository = (*Table)(nil)

// NewTable returns a table holding seed. Seed records are copied.
func NewTable(seed map[people.Kind][]people.Record) *Table {
	t := &Table{
		rows:    make(map[people.Kind][]people.Record, len(seed)),
		pkCount: make(map[people.Kind]int, len(seed)),
	}
	for kind, records := range seed {
		rows := make([]people.Record, 0, len(records))
		for _, rec := range records {
			rec = rec.Clone()
			rec.Kind = kind
			rows = append(rows, rec)
			if rec.ID > t.pkCount[kind] {
				t.pkCount[kind] = rec.ID
			}
		}
		t.rows[kind] = rows
	}
	return t
}

func (t *Table) query(kind people.Kind) []people.Record {
	records := make([]people.Record, 0, len(t.rows[kind]))
	for _, rec := range t.rows[kind] {
		records = append(records, rec.Clone())
	}
	return records
}

func (t *Table) index(kind people.Kind, id int) int {
	for i, rec := range t.rows[kind] {
		if rec.ID == id {
			return i
		}
	}
	return -1
}

func (t *Table) QueryAll(_ context.Context, kind people.Kind) ([]people.Record, error) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.query(kind), nil
}

func (t *Table) GetByID(_ context.Context, kind people.Kind, id int) (people.Record, error) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	if i := t.index(kind, id); i >= 0 {
		return t.rows[kind][i].Clone(), nil
	}
	return people.Record{}, people.ErrNotFound
}

func (t *Table) Prepend(_ context.Context, rec people.Record) (people.Record, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.pkCount[rec.Kind]++
	rec = rec.Clone()
	rec.ID = t.pkCount[rec.Kind]
	t.rows[rec.Kind] = append([]people.Record{rec}, t.rows[rec.Kind]...)
	return rec.Clone(), nil
}

func (t *Table) Replace(_ context.Context, rec people.Record) (people.Record, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	i := t.index(rec.Kind, rec.ID)
	if i < 0 {
		return people.Record{}, people.ErrNotFound
	}
	t.rows[rec.Kind][i] = rec.Clone()
	return rec, nil
}

func (t *Table) Delete(_ context.Context, kind people.Kind, id int) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	i := t.index(kind, id)
	if i < 0 {
		return people.ErrNotFound
	}
	rows := t.rows[kind]
	t.rows[kind] = append(rows[:i:i], rows[i+1:]...)
	return nil
}

func (t *Table) Count(_ context.Context, kind people.Kind) (int, error) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return len(t.rows[kind]), nil
}
