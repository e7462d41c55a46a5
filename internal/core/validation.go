package core

// validation.go holds the ingestion-boundary checks for inventory rows and
// manifest entries.
//
// Rules are declared as validator/v10 struct tags on InventoryRecord and
// RequiredPart. Failures are turned into short human-readable reasons that end
// up in SkippedRow.Reason or in manifest load errors.

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateRecord checks a single inventory row.
func ValidateRecord(rec InventoryRecord) error {
	if err := validate.Struct(rec); err != nil {
		return errors.New(describeValidation(err))
	}
	return nil
}

// describeValidation flattens validator errors into "field: problem; ..." form.
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fieldLabel(fe.Field()), ruleMessage(fe)))
	}
	return strings.Join(msgs, "; ")
}

func fieldLabel(field string) string {
	switch field {
	case "AircraftID":
		return ColumnAircraft
	case "Description":
		return ColumnDescription
	case "Required":
		return "required quantity"
	default:
		return strings.ToLower(field)
	}
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required field is empty"
	case "max":
		return fmt.Sprintf("longer than %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}
