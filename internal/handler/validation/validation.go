package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"lastbite/internal/domain/listing"
	"lastbite/internal/pkg/errs"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const TagListingTag = "listingtag"

var registerOnce sync.Once

// Register installs the custom rules on gin's validator. Safe to call more
// than once.
func Register() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errs.New("gin validator engine is not validator/v10")
			return
		}
		v.RegisterTagNameFunc(fieldName)
		err = v.RegisterValidation(TagListingTag, validateListingTag)
	})
	return err
}

// fieldName reports json or form names so error details match the wire.
func fieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

// A category tag must be non-blank and fit the stored length once
// normalized.
func validateListingTag(fl validator.FieldLevel) bool {
	s := listing.NormalizeTag(fl.Field().String())
	return s != "" && len(s) <= listing.MaxTagLength && !strings.ContainsAny(s, ",\n\t")
}

// Describe flattens validator errors into field → rule pairs for the error
// envelope detail.
func Describe(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}
