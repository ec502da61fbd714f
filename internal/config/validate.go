package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their TOML key so errors match the config file.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks cfg against its validate tags.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// describe turns a field error into a message naming the TOML key,
// e.g. store.backend instead of Config.Store.Backend.
func describe(fe validator.FieldError) string {
	key := fe.Namespace()
	if i := strings.Index(key, "."); i >= 0 {
		key = key[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", key)
	case "oneof":
		return fmt.Sprintf("invalid %s %q: must be %s", key, fe.Value(), formatOptions(strings.Fields(fe.Param())))
	case "url":
		return fmt.Sprintf("invalid %s %q: must be a URL", key, fe.Value())
	case "email":
		return fmt.Sprintf("invalid %s %q: must be an email address", key, fe.Value())
	case "startswith":
		return fmt.Sprintf("invalid %s %q: must start with %q", key, fe.Value(), fe.Param())
	case "gt":
		return fmt.Sprintf("invalid %s %v: must be positive", key, fe.Value())
	case "gte":
		return fmt.Sprintf("invalid %s %v: must not be negative", key, fe.Value())
	default:
		return fmt.Sprintf("invalid %s: failed %s", key, fe.Tag())
	}
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
