package people_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/lotus/core"
	"github.com/trezcool/lotus/core/people"
	"github.com/trezcool/lotus/storage/inmem"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

var (
	ctx        = context.Background()
	tenDigitRe = regexp.MustCompile(`^[1-9][0-9]{9}$`)
)

func setup(t *testing.T) *people.Service {
	t.Helper()
	validate := validator.New()
	core.InitValidators(validate, core.NewTranslator())
	return people.NewService(inmem.NewTable(people.SeedData()), validate, nopLogger{})
}

func names(records []people.Record) []string {
	out := make([]string, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.Text("name"))
	}
	return out
}

func TestService_Query(t *testing.T) {
	svc := setup(t)

	tests := []struct {
		name     string
		kind     people.Kind
		search   string
		ordering []core.Ordering
		want     []string
	}{
		{
			name: "all", kind: people.KindTeacher,
			want: []string{"John Doe", "Jane Doe", "Mike Geller", "Jay French"},
		},
		{name: "search by name", kind: people.KindTeacher, search: "DOE", want: []string{"John Doe", "Jane Doe"}},
		{name: "search by email", kind: people.KindStudent, search: "gmail", want: []string{"Jay French", "Jane Smith"}},
		{name: "search with a typo", kind: people.KindParent, search: "gelller", want: []string{"Mike Geller"}},
		{name: "search (unknown)", kind: people.KindParent, search: "zzz", want: []string{}},
		{
			name: "order by name", kind: people.KindTeacher, ordering: []core.Ordering{{Field: "name", Ascending: true}},
			want: []string{"Jane Doe", "Jay French", "John Doe", "Mike Geller"},
		},
		{
			name: "order by grade,-id", kind: people.KindStudent,
			ordering: []core.Ordering{{Field: "grade", Ascending: true}, {Field: "id"}},
			want:     []string{"Jane Smith", "Jay French", "Mike Geller", "Jane Doe", "John Doe"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Query(ctx, tt.kind, people.QueryFilter{Search: tt.search}, tt.ordering)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}

	_, err := svc.Query(ctx, "alien", people.QueryFilter{}, nil)
	assert.Equal(t, people.ErrUnknownKind, errors.Cause(err))
}

func TestService_Create(t *testing.T) {
	t.Run("teacher", func(t *testing.T) {
		svc := setup(t)

		rec, err := svc.Create(ctx, people.KindTeacher, map[string]interface{}{
			"name": "Ms Frizzle", "email": "frizzle@school.test", "phone": "555", "address": "Walkerville",
			"subjects": "Science, Field trips", "classes": "3C",
		})

		require.NoError(t, err)
		assert.Equal(t, 5, rec.ID)
		assert.Regexp(t, tenDigitRe, rec.Fields["teacher_id"])
		assert.Equal(t, people.DefaultPhoto, rec.Fields["photo"])
		assert.Equal(t, []string{"Science", "Field trips"}, rec.Fields["subjects"])

		all, _ := svc.Query(ctx, people.KindTeacher, people.QueryFilter{}, nil)
		assert.Equal(t, "Ms Frizzle", all[0].Text("name"), "new records come first")
		n, _ := svc.Count(ctx, people.KindTeacher)
		assert.Equal(t, 5, n)
	})

	t.Run("parent has no generated id nor photo", func(t *testing.T) {
		svc := setup(t)

		rec, err := svc.Create(ctx, people.KindParent, map[string]interface{}{
			"name": "Ms Bradley", "students": []interface{}{"Cecilia Bradley"}, "phone": "1", "address": "x",
		})

		require.NoError(t, err)
		assert.NotContains(t, rec.Fields, "photo")
		assert.NotContains(t, rec.Fields, "student_id")
	})

	t.Run("invalid", func(t *testing.T) {
		svc := setup(t)

		_, err := svc.Create(ctx, people.KindStudent, map[string]interface{}{"name": "Kid", "grade": "x"})

		vErr, ok := errors.Cause(err).(*core.ValidationError)
		require.True(t, ok, "want *core.ValidationError; got %T", err)
		assert.Equal(t, []core.FieldError{
			{Field: "grade", Error: "Grade must be a number"},
			{Field: "class", Error: "Class is required"},
			{Field: "address", Error: "Address is required"},
		}, vErr.Fields)
		n, _ := svc.Count(ctx, people.KindStudent)
		assert.Equal(t, 5, n)
	})
}

func TestService_Update(t *testing.T) {
	svc := setup(t)
	orig, err := svc.Get(ctx, people.KindStudent, 2)
	require.NoError(t, err)

	rec, err := svc.Update(ctx, people.KindStudent, 2, map[string]interface{}{
		"name": "Jane Doe", "grade": 6, "class": "6A", "address": "1 New St",
	})

	require.NoError(t, err)
	assert.Equal(t, 2, rec.ID)
	assert.Equal(t, 6, rec.Fields["grade"])
	assert.Equal(t, "", rec.Fields["email"], "update is a full replacement")
	assert.Equal(t, orig.Fields["student_id"], rec.Fields["student_id"])
	assert.Equal(t, orig.Fields["photo"], rec.Fields["photo"])

	got, _ := svc.Get(ctx, people.KindStudent, 2)
	assert.Equal(t, rec, got)

	_, err = svc.Update(ctx, people.KindStudent, 99, map[string]interface{}{
		"name": "Ghost", "grade": 1, "class": "1A", "address": "x",
	})
	assert.Equal(t, people.ErrNotFound, errors.Cause(err))
}

func TestService_Delete(t *testing.T) {
	svc := setup(t)

	require.NoError(t, svc.Delete(ctx, people.KindParent, 2))
	_, err := svc.Get(ctx, people.KindParent, 2)
	assert.Equal(t, people.ErrNotFound, err)

	assert.Equal(t, people.ErrNotFound, svc.Delete(ctx, people.KindParent, 2))
	n, _ := svc.Count(ctx, people.KindParent)
	assert.Equal(t, 2, n)
}
