package people

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/lotus/core"
)

type Input string

const (
	InputText   Input = "text"
	InputEmail  Input = "email"
	InputNumber Input = "number"
	InputList   Input = "list" // comma separated in forms
	InputURL    Input = "url"
)

// Field describes one form input.
type Field struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Input    Input  `json:"input"`
	Required bool   `json:"required"`
	Message  string `json:"-"` // shown when a required field is missing
}

func (f Field) requiredMessage() string {
	if f.Message != "" {
		return f.Message
	}
	return f.Label + " is required"
}

func (f Field) tag() string {
	var tags []string
	switch f.Input {
	case InputText:
		if f.Required {
			tags = append(tags, "notblank")
		}
	case InputEmail:
		tags = append(tags, optional(f.Required), "email")
	case InputURL:
		tags = append(tags, optional(f.Required), "uri")
	case InputNumber:
		if f.Required {
			tags = append(tags, "required", "gte=1")
		}
	case InputList:
		if f.Required {
			tags = append(tags, "min=1")
		}
	}
	return strings.Join(tags, ",")
}

func optional(required bool) string {
	if required {
		return "required"
	}
	return "omitempty"
}

// Schema is the ordered list of form inputs of a kind.
type Schema []Field

var schemas = map[Kind]Schema{
	KindStudent: {
		{Name: "name", Label: "Name", Input: InputText, Required: true, Message: "Name is required"},
		{Name: "email", Label: "Email", Input: InputEmail},
		{Name: "phone", Label: "Phone", Input: InputText},
		{Name: "grade", Label: "Grade", Input: InputNumber, Required: true},
		{Name: "class", Label: "Class", Input: InputText, Required: true},
		{Name: "address", Label: "Address", Input: InputText, Required: true, Message: "Address is required"},
		{Name: "photo", Label: "Photo", Input: InputURL},
	},
	KindTeacher: {
		{Name: "name", Label: "Name", Input: InputText, Required: true, Message: "Name is required"},
		{Name: "email", Label: "Email", Input: InputEmail, Required: true, Message: "Invalid email"},
		{Name: "phone", Label: "Phone", Input: InputText, Required: true, Message: "Phone is required"},
		{Name: "address", Label: "Address", Input: InputText, Required: true, Message: "Address is required"},
		{Name: "subjects", Label: "Subjects", Input: InputList, Required: true, Message: "Subjects are required"},
		{Name: "classes", Label: "Classes", Input: InputList, Required: true, Message: "Classes are required"},
		{Name: "photo", Label: "Photo", Input: InputURL},
	},
	KindParent: {
		{Name: "name", Label: "Name", Input: InputText, Required: true, Message: "Name is required"},
		{Name: "students", Label: "Students", Input: InputList, Required: true, Message: "Students are required"},
		{Name: "phone", Label: "Phone", Input: InputText, Required: true, Message: "Phone is required"},
		{Name: "email", Label: "Email", Input: InputEmail},
		{Name: "address", Label: "Address", Input: InputText, Required: true, Message: "Address is required"},
	},
}

// SchemaOf returns the form schema of kind.
func SchemaOf(kind Kind) (Schema, error) {
	if s, ok := schemas[kind]; ok {
		return s, nil
	}
	return nil, errors.Wrapf(ErrUnknownKind, "%q", kind)
}

// Normalize keeps the schema's fields of input and converts them to their stored types.
// Values that cannot be converted are reported in the returned field -> message mapping.
func (s Schema) Normalize(input map[string]interface{}) (Fields, map[string]string) {
	fields := make(Fields, len(s))
	fldErrs := make(map[string]string)

	for _, f := range s {
		raw, ok := input[f.Name]
		if !ok || raw == nil {
			raw = ""
		}
		switch f.Input {
		case InputNumber:
			n, err := toInt(raw)
			if err != nil {
				fldErrs[f.Name] = f.Label + " must be a number"
			}
			fields[f.Name] = n
		case InputList:
			fields[f.Name] = toList(raw)
		case InputEmail:
			fields[f.Name] = core.CleanString(toString(raw), true /* lower */)
		default:
			fields[f.Name] = core.CleanString(toString(raw))
		}
	}
	return fields, fldErrs
}

// Validate checks normalized fields against the schema and returns the field -> message mapping.
// The mapping is empty when fields are valid.
func (s Schema) Validate(validate *validator.Validate, fields Fields) map[string]string {
	fldErrs := make(map[string]string)
	for _, f := range s {
		tag := f.tag()
		if tag == "" {
			continue
		}
		err := validate.Var(fields[f.Name], tag)
		if err == nil {
			continue
		}
		vErrs, ok := err.(validator.ValidationErrors)
		if !ok || len(vErrs) == 0 {
			fldErrs[f.Name] = err.Error()
			continue
		}
		switch vErrs[0].Tag() {
		case "email":
			fldErrs[f.Name] = "Invalid email"
		case "uri":
			fldErrs[f.Name] = f.Label + " must be a valid URL"
		default:
			fldErrs[f.Name] = f.requiredMessage()
		}
	}
	return fldErrs
}

// fieldErrors orders fldErrs following the schema.
func (s Schema) fieldErrors(fldErrs map[string]string) []core.FieldError {
	out := make([]core.FieldError, 0, len(fldErrs))
	for _, f := range s {
		if msg, ok := fldErrs[f.Name]; ok {
			out = append(out, core.FieldError{Field: f.Name, Error: msg})
		}
	}
	return out
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func toInt(v interface{}) (int, error) {
	switch t := v.(type) {
	case int:
		return t, nil
	case float64:
		if t != float64(int(t)) {
			return 0, errors.Errorf("%v is not an integer", t)
		}
		return int(t), nil
	case string:
		if t = strings.TrimSpace(t); t == "" {
			return 0, nil
		}
		return strconv.Atoi(t)
	}
	return 0, errors.Errorf("%v is not a number", v)
}

func toList(v interface{}) []string {
	switch t := v.(type) {
	case []string:
		return core.SplitList(strings.Join(t, ","))
	case []interface{}:
		items := make([]string, 0, len(t))
		for _, item := range t {
			if s := core.CleanString(toString(item)); s != "" {
				items = append(items, s)
			}
		}
		return items
	default:
		return core.SplitList(toString(v))
	}
}
