package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

var registerOnce sync.Once

// Register installs the custom tags on gin's binding validator. Safe to call
// more than once.
func Register() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			Configure(v)
		}
	})
}

// Configure adds json field naming plus the notblank and isodate tags.
func Configure(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	// Both funcs are valid, registration only fails on an empty tag.
	_ = v.RegisterValidation("notblank", notBlank)
	_ = v.RegisterValidation("isodate", isoDate)
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return !field.IsZero()
	}
	return strings.TrimSpace(field.String()) != ""
}

func isoDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(dateLayout, fl.Field().String())
	return err == nil
}

// Messages turns a binding error for obj into human-readable messages. Each
// field reports the text of its `msg` tag when it has one.
func Messages(err error, obj interface{}) []string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		seen := make(map[string]bool, len(ve))
		for _, fe := range ve {
			msg := fieldMessage(obj, fe.StructField())
			if msg == "" {
				msg = fieldError(fe)
			}
			if !seen[msg] {
				seen[msg] = true
				msgs = append(msgs, msg)
			}
		}
		return msgs
	}

	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		if f, ok := fieldByJSONName(obj, ute.Field); ok {
			if msg := f.Tag.Get("msg"); msg != "" {
				return []string{msg}
			}
		}
		return []string{fmt.Sprintf("%s has an invalid value", ute.Field)}
	}

	return []string{"Invalid request body"}
}

func fieldMessage(obj interface{}, structField string) string {
	t := indirectType(obj)
	if t == nil {
		return ""
	}
	f, ok := t.FieldByName(structField)
	if !ok {
		return ""
	}
	return f.Tag.Get("msg")
}

func fieldByJSONName(obj interface{}, name string) (reflect.StructField, bool) {
	t := indirectType(obj)
	if t == nil {
		return reflect.StructField{}, false
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if strings.SplitN(f.Tag.Get("json"), ",", 2)[0] == name {
			return f, true
		}
	}
	return reflect.StructField{}, false
}

func indirectType(obj interface{}) reflect.Type {
	t := reflect.TypeOf(obj)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	return t
}

func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "uuid":
		return field + " must be a valid id"
	case "isodate":
		return field + " must be a date in YYYY-MM-DD form"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
