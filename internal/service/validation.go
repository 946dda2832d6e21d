package service

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"sori/internal/config"
	"sori/internal/httputil"
)

// nameRules apply to every user-chosen name
var nameRules = []validation.Rule{
	validation.Required,
	validation.RuneLength(1, config.MaxNameLength),
}

// optionalNameRules accept an absent name but not an empty one
var optionalNameRules = []validation.Rule{
	validation.NilOrNotEmpty,
	validation.RuneLength(1, config.MaxNameLength),
}

// present applies rules to the value of a present, non-null OptionalString
func present(rules ...validation.Rule) validation.Rule {
	return validation.By(func(value any) error {
		o, _ := value.(httputil.OptionalString)
		if !o.Present || o.Value == nil {
			return nil
		}
		return validation.Validate(*o.Value, rules...)
	})
}

var idRules = []validation.Rule{is.UUID}

var imageRules = []validation.Rule{is.URL}
