package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator with the portal's rules
type Validator struct {
	validate *validator.Validate
	business *BusinessValidator
}

// New creates a validator with every custom rule registered
func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so errors match the form fields
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()

	return &Validator{validate: validate, business: bv}
}

// Validate checks struct tags and returns nil when s is valid
func (v *Validator) Validate(s interface{}) ValidationErrors {
	if err := v.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

func (v *Validator) GetBusinessValidator() *BusinessValidator {
	return v.business
}

// BusinessValidator handles rules that go beyond single-field tags
type BusinessValidator struct {
	validate *validator.Validate
}

// registerBusinessRules registers custom business rule validators
func (bv *BusinessValidator) registerBusinessRules() {
	// Value must contain something besides whitespace
	bv.validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	// The stored answer must be answerable
	bv.validate.RegisterStructValidation(func(sl validator.StructLevel) {
		draft := sl.Current().Interface().(QuizDraft)
		if len(draft.Options) > 0 && (draft.AnswerIndex < 0 || draft.AnswerIndex >= len(draft.Options)) {
			sl.ReportError(draft.AnswerIndex, "answerIndex", "AnswerIndex", "answer_in_range", "")
		}
	}, QuizDraft{})
}

// ValidateQuizDraft validates quiz question content
func (bv *BusinessValidator) ValidateQuizDraft(draft *QuizDraft) ValidationErrors {
	if err := bv.validate.Struct(draft); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}
