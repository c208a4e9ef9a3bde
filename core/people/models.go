package people

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrUnknownKind = errors.New("unknown kind")
)

type Kind string

const (
	KindStudent Kind = "student"
	KindTeacher Kind = "teacher"
	KindParent  Kind = "parent"
)

var Kinds = []Kind{KindStudent, KindTeacher, KindParent}

// ParseKind accepts the singular or plural name of a kind, eg. "teacher" or "teachers".
func ParseKind(s string) (Kind, bool) {
	s = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s")
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Plural is the collection name of the kind, eg. "students".
func (k Kind) Plural() string { return string(k) + "s" }

// codeField is the generated 10-digit public identifier of the kind, if it has one.
func (k Kind) codeField() string {
	switch k {
	case KindStudent:
		return "student_id"
	case KindTeacher:
		return "teacher_id"
	}
	return ""
}

// Fields holds the normalized values of a record: strings, ints and []string.
type Fields map[string]interface{}

// Record is a student, teacher or parent. It is encoded as a flat JSON object.
type Record struct {
	ID     int
	Kind   Kind
	Fields Fields
}

// Value returns the value of field name; "id" is the record ID.
func (r Record) Value(name string) interface{} {
	if name == "id" {
		return r.ID
	}
	return r.Fields[name]
}

// Text renders field name as a string; lists are joined with ", ".
func (r Record) Text(name string) string {
	switch v := r.Value(name).(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, ", ")
	default:
		return fmt.Sprint(v)
	}
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	fields := make(Fields, len(r.Fields))
	for k, v := range r.Fields {
		if list, ok := v.([]string); ok {
			v = append([]string(nil), list...)
		}
		fields[k] = v
	}
	r.Fields = fields
	return r
}

func (r Record) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(r.Fields)+1)
	for k, v := range r.Fields {
		m[k] = v
	}
	m["id"] = r.ID
	return json.Marshal(m)
}

// QueryFilter filters a listing; Search matches names & emails.
type QueryFilter struct {
	Search string `query:"search"`
}

func (f *QueryFilter) Clean() {
	f.Search = strings.ToLower(strings.TrimSpace(f.Search))
}

// Repository stores the records of every kind.
type Repository interface {
	QueryAll(ctx context.Context, kind Kind) ([]Record, error)
	GetByID(ctx context.Context, kind Kind, id int) (Record, error)
	// Prepend assigns rec a new ID and stores it first in its kind's sequence.
	Prepend(ctx context.Context, rec Record) (Record, error)
	Replace(ctx context.Context, rec Record) (Record, error)
	Delete(ctx context.Context, kind Kind, id int) error
	Count(ctx context.Context, kind Kind) (int, error)
}
