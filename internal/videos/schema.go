package videos

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/shortflix/backend/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return field.Name
		}
		return name
	})
	return v
}

// VideoInput is the creation payload accepted from clients.
type VideoInput struct {
	VideoURL    string  `json:"videoUrl" validate:"required,url"`
	Title       string  `json:"title" validate:"required,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Tags        TagList `json:"tags" validate:"required,min=1"`
	// Duration is measured by the client and accepted as reported.
	Duration *int `json:"duration,omitempty" validate:"omitempty,min=0"`
}

// TagList decodes either a JSON array of strings or a single string.
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var single string
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return err
		}
		*t = TagList{single}
		return nil
	}

	var list []string
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return err
	}
	*t = list
	return nil
}

// ValidateInput checks a creation payload against the input contract.
func ValidateInput(input VideoInput) error {
	return validateStruct(input, ErrInvalidInput)
}

// ValidateVideo checks an assembled record against the full record contract.
func ValidateVideo(video models.Video) error {
	return validateStruct(video, ErrInternalValidation)
}

func validateStruct(s any, kind error) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", kind, err)
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		key := fieldPath(fe.Namespace())
		if _, seen := fields[key]; !seen {
			fields[key] = fieldMessage(fe)
		}
	}
	return &ValidationError{Kind: kind, Fields: fields}
}

// fieldPath drops the struct name from a validator namespace such as "Video.comments[0].text".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "min":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		case reflect.Slice, reflect.Array:
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		case reflect.Slice, reflect.Array:
			return fmt.Sprintf("must contain at most %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	}
	return fmt.Sprintf("failed %q validation", fe.Tag())
}
