package core

import (
	"io"
	"net/http"
	"reflect"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
)

type Argument struct {
	Name  string
	Value any
}

func Arg(name string, value any) Argument {
	return Argument{Name: name, Value: value}
}

// Require fails with an argument fault listing every blank argument. Blank
// means nil, an empty string or an empty slice/map. Numbers and booleans are
// never blank.
func Require(args ...Argument) error {
	errs := validation.Errors{}
	for _, arg := range args {
		if isNilValue(arg.Value) {
			errs[arg.Name] = validation.ErrRequired
			continue
		}
		if !isCollectionOrText(arg.Value) {
			continue
		}
		if err := validation.Validate(arg.Value, validation.Required); err != nil {
			errs[arg.Name] = err
		}
	}
	if err := errs.Filter(); err != nil {
		fault := goerrors.FromOzzoValidation(err, "watson: required argument missing").
			WithCode(http.StatusBadRequest).
			WithTextCode(WatsonErrorArgumentRequired)
		sort.Slice(fault.ValidationErrors, func(i, j int) bool {
			return fault.ValidationErrors[i].Field < fault.ValidationErrors[j].Field
		})
		return fault
	}
	return nil
}

// MissingArguments returns the field names carried by an argument fault.
func MissingArguments(err error) []string {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return nil
	}
	names := make([]string, 0, len(rich.ValidationErrors))
	for _, field := range rich.ValidationErrors {
		names = append(names, field.Field)
	}
	return names
}

func isCollectionOrText(value any) bool {
	if _, isReader := value.(io.Reader); isReader {
		return false
	}
	switch reflect.Indirect(reflect.ValueOf(value)).Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return true
	default:
		return false
	}
}

func isNilValue(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// Ptr returns a pointer to value, for optional query arguments.
func Ptr[T any](value T) *T {
	return &value
}
