package product

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/lotus/core"
)

var (
	titleTag  = "product_title"
	titleText = "Product name is required"

	priceTag  = "product_price"
	priceText = "Price must be entered"

	imageTag  = "product_image"
	imageText = "Image URL is required"
)

// InitValidators registers the product validation rules and their messages.
// core.InitValidators must have been called on validate first.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	validate.RegisterAlias(titleTag, "notblank")
	validate.RegisterAlias(priceTag, "gt=0")
	validate.RegisterAlias(imageTag, "notblank")

	core.RegisterCustomTranslation(validate, translator, titleTag, titleText)
	core.RegisterCustomTranslation(validate, translator, priceTag, priceText)
	core.RegisterCustomTranslation(validate, translator, imageTag, imageText)
}

// Validate checks c against the product rules and returns the field -> message mapping.
// The mapping is empty when c is valid.
func Validate(validate *validator.Validate, translator ut.Translator, c Candidate) map[string]string {
	c = c.Clean()
	if err := validate.Struct(c); err != nil {
		if fldErrs := core.TranslateErrors(err, translator); fldErrs != nil {
			return fldErrs
		}
		return map[string]string{"_": err.Error()}
	}
	return map[string]string{}
}

// newValidationError wraps a non-empty field mapping into a *core.ValidationError.
func newValidationError(fldErrs map[string]string) error {
	flds := make([]core.FieldError, 0, len(fldErrs))
	for _, name := range []string{"title", "price", "image"} {
		if msg, ok := fldErrs[name]; ok {
			flds = append(flds, core.FieldError{Field: name, Error: msg})
		}
	}
	for name, msg := range fldErrs {
		if name != "title" && name != "price" && name != "image" {
			flds = append(flds, core.FieldError{Field: name, Error: msg})
		}
	}
	return core.NewValidationError(nil, flds...)
}
