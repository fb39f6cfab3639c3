package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// --- Domain errors ---
var (
	ErrRuleExecutionFailed = errors.New("rule execution failed")
	ErrInvalidRulePack     = errors.New("invalid rule pack")
	ErrUnknownForm         = errors.New("unknown form")
	ErrInvalidForm         = errors.New("form is not valid")
	ErrCartNotFound        = errors.New("cart not found")
	ErrUnsupportedForm     = errors.New("form has no submission handler")
	ErrInvalidEvent        = errors.New("invalid form event")
	ErrInvalidValue        = errors.New("field value must be a string, number, boolean or null")
)

// ValidationError carries the per-field messages that blocked a submission.
type ValidationError struct {
	Form   string
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for f := range e.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	if len(fields) == 0 {
		return fmt.Sprintf("%s: %s", e.Form, ErrInvalidForm)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Form, ErrInvalidForm, strings.Join(fields, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidForm }

// --- Rule packs ---

// RulePackDefinition is a versioned set of declarative form rules as read
// from disk.
type RulePackDefinition struct {
	Version     string                    `json:"version" yaml:"version"`
	Description string                    `json:"description,omitempty" yaml:"description,omitempty"`
	Forms       map[string]FormDefinition `json:"forms" yaml:"forms"`
}

type FormDefinition struct {
	// Extends names a built-in form whose rules are kept unless overridden.
	Extends string                     `json:"extends,omitempty" yaml:"extends,omitempty"`
	Fields  map[string]FieldDefinition `json:"fields" yaml:"fields"`
}

type FieldDefinition struct {
	Required  string             `json:"required,omitempty" yaml:"required,omitempty"`
	MinLength *LengthDefinition  `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *LengthDefinition  `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern   *PatternDefinition `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Validator string             `json:"validator,omitempty" yaml:"validator,omitempty"`
	Logic     map[string]any     `json:"logic,omitempty" yaml:"logic,omitempty"` // JsonLogic; truthy means valid
	Message   string             `json:"message,omitempty" yaml:"message,omitempty"`
	DependsOn []string           `json:"dependsOn,omitempty" yaml:"dependsOn,omitempty"`
}

type LengthDefinition struct {
	Value   int    `json:"value" yaml:"value"`
	Message string `json:"message" yaml:"message"`
}

type PatternDefinition struct {
	Regex   string `json:"regex" yaml:"regex"`
	Message string `json:"message" yaml:"message"`
}
