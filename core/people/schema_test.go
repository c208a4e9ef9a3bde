package people

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/lotus/core"
)

func newValidator() *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, core.NewTranslator())
	return validate
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in     string
		want   Kind
		wantOk bool
	}{
		{in: "student", want: KindStudent, wantOk: true},
		{in: "Teachers", want: KindTeacher, wantOk: true},
		{in: " parents ", want: KindParent, wantOk: true},
		{in: "product"},
		{in: ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseKind(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOk, ok)
		})
	}
}

func TestSchema_Normalize(t *testing.T) {
	schema, err := SchemaOf(KindTeacher)
	assert.NoError(t, err)

	fields, fldErrs := schema.Normalize(map[string]interface{}{
		"name":     "  Ms Frizzle ",
		"email":    "Frizzle@School.TEST",
		"phone":    5551234,
		"address":  "Walkerville",
		"subjects": "Science,  Field trips ,",
		"classes":  []interface{}{"3C", " ", "4A"},
		"unknown":  "dropped",
	})

	assert.Empty(t, fldErrs)
	assert.Equal(t, Fields{
		"name":     "Ms Frizzle",
		"email":    "frizzle@school.test",
		"phone":    "5551234",
		"address":  "Walkerville",
		"subjects": []string{"Science", "Field trips"},
		"classes":  []string{"3C", "4A"},
		"photo":    "",
	}, fields)

	student, _ := SchemaOf(KindStudent)
	fields, fldErrs = student.Normalize(map[string]interface{}{"grade": "5"})
	assert.Empty(t, fldErrs)
	assert.Equal(t, 5, fields["grade"])

	_, fldErrs = student.Normalize(map[string]interface{}{"grade": "five"})
	assert.Equal(t, map[string]string{"grade": "Grade must be a number"}, fldErrs)

	_, fldErrs = student.Normalize(map[string]interface{}{"grade": 4.5})
	assert.Equal(t, map[string]string{"grade": "Grade must be a number"}, fldErrs)
}

func TestSchema_Validate(t *testing.T) {
	validate := newValidator()

	tests := []struct {
		name  string
		kind  Kind
		input map[string]interface{}
		want  map[string]string
	}{
		{
			name: "teacher: empty form",
			kind: KindTeacher,
			want: map[string]string{
				"name":     "Name is required",
				"email":    "Invalid email",
				"phone":    "Phone is required",
				"address":  "Address is required",
				"subjects": "Subjects are required",
				"classes":  "Classes are required",
			},
		},
		{
			name: "teacher: bad email",
			kind: KindTeacher,
			input: map[string]interface{}{
				"name": "A", "email": "nope", "phone": "1", "address": "x", "subjects": "Math", "classes": "1A",
			},
			want: map[string]string{"email": "Invalid email"},
		},
		{
			name: "teacher: valid",
			kind: KindTeacher,
			input: map[string]interface{}{
				"name": "A", "email": "a@b.cd", "phone": "1", "address": "x", "subjects": "Math", "classes": "1A",
			},
			want: map[string]string{},
		},
		{
			name:  "student: optional email & phone",
			kind:  KindStudent,
			input: map[string]interface{}{"name": "Kid", "grade": 3, "class": "3A", "address": "x"},
			want:  map[string]string{},
		},
		{
			name:  "student: missing grade & bad photo",
			kind:  KindStudent,
			input: map[string]interface{}{"name": "Kid", "class": "3A", "address": "x", "photo": "::"},
			want:  map[string]string{"grade": "Grade is required", "photo": "Photo must be a valid URL"},
		},
		{
			name:  "parent: blank values",
			kind:  KindParent,
			input: map[string]interface{}{"name": "  ", "students": " , ", "phone": "1", "address": "x", "email": "bad"},
			want: map[string]string{
				"name":     "Name is required",
				"students": "Students are required",
				"email":    "Invalid email",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, err := SchemaOf(tt.kind)
			assert.NoError(t, err)

			fields, _ := schema.Normalize(tt.input)
			assert.Equal(t, tt.want, schema.Validate(validate, fields))
		})
	}
}

func TestSchemaOf_unknown(t *testing.T) {
	_, err := SchemaOf("alien")
	assert.Error(t, err)
}
