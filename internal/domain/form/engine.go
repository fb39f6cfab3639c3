package form

import (
	"context"
	"sort"

	"github.com/Victor-armando18/vinyl-store/internal/domain"
)

// State is an immutable snapshot of a form: values, failing fields and
// touched fields. Every operation returns a new State and leaves the
// receiver untouched.
type State struct {
	rules   RuleSet
	initial Values
	values  Values
	errors  Errors
	touched map[string]bool
}

// New creates the state of a form governed by rules, starting from initial.
func New(rules RuleSet, initial Values) State {
	return State{
		rules:   rules,
		initial: copyValues(initial),
		values:  copyValues(initial),
		errors:  Errors{},
		touched: map[string]bool{},
	}
}

// Restore rebuilds a state from a snapshot held by a client. Errors are
// taken as given so that the client keeps seeing what it saw. A snapshot
// does not carry the form's original values, so the restored state starts
// from an empty form and Reset(nil) clears it.
func Restore(rules RuleSet, snap Snapshot) State {
	s := New(rules, nil)
	s.values = copyValues(snap.Values)
	for f, msg := range snap.Errors {
		if msg != "" {
			s.errors[f] = msg
		}
	}
	for _, f := range snap.Touched {
		s.touched[f] = true
	}
	return s
}

func (s State) Rules() RuleSet { return s.rules }

func (s State) Value(field string) any { return s.values[field] }

func (s State) Error(field string) string { return s.errors[field] }

func (s State) IsTouched(field string) bool { return s.touched[field] }

// Values returns a copy of the current values.
func (s State) Values() Values { return copyValues(s.values) }

// Errors returns a copy of the current error map.
func (s State) Errors() Errors {
	out := make(Errors, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

// Touched returns the touched fields in lexical order.
func (s State) Touched() []string {
	out := make([]string, 0, len(s.touched))
	for f := range s.touched {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// SetValue records a change of field. The field is re-validated when it was
// touched before or has a rule; touched fields depending on it are
// re-validated against the new value.
func (s State) SetValue(field string, value any) State {
	next := s.clone()
	next.values[field] = value
	if next.touched[field] || next.rules.Has(field) {
		next.validateField(field)
	}
	for _, dep := range next.rules.Dependents(field) {
		if next.touched[dep] {
			next.validateField(dep)
		}
	}
	return next
}

// MarkTouched records a blur of field with its current value and validates it.
func (s State) MarkTouched(field string, value any) State {
	next := s.clone()
	next.values[field] = value
	next.touched[field] = true
	next.validateField(field)
	return next
}

// Validate evaluates every ruled field, as done at submit time, and marks
// them all touched so that their messages become visible.
func (s State) Validate() State {
	next := s.clone()
	next.errors = ValidateAll(next.values, next.rules)
	for f := range next.rules {
		next.touched[f] = true
	}
	return next
}

// Valid reports whether the form may be submitted.
func (s State) Valid() bool {
	return IsValid(s.values, s.errors, s.rules)
}

// Reset replaces the values with newValues, or with the initial values when
// newValues is nil, and forgets every error and touched field.
func (s State) Reset(newValues Values) State {
	next := New(s.rules, s.initial)
	if newValues != nil {
		next.values = copyValues(newValues)
	}
	return next
}

// Submit validates the whole form and hands the values to submit only when
// the form is valid. The returned state always carries the fresh errors.
func (s State) Submit(ctx context.Context, submit func(context.Context, Values) error) (State, error) {
	next := s.Validate()
	if !next.Valid() {
		return next, &domain.ValidationError{Errors: next.Errors()}
	}
	return next, submit(ctx, next.Values())
}

// Snapshot exports the state as plain data.
func (s State) Snapshot() Snapshot {
	return Snapshot{Values: s.Values(), Errors: s.Errors(), Touched: s.Touched()}
}

func (s State) validateField(field string) {
	rule, ok := s.rules[field]
	if !ok {
		delete(s.errors, field)
		return
	}
	if msg := rule.Evaluate(s.values[field], s.values); msg != "" {
		s.errors[field] = msg
		return
	}
	delete(s.errors, field)
}

func (s State) clone() State {
	next := State{
		rules:   s.rules,
		initial: s.initial,
		values:  copyValues(s.values),
		errors:  make(Errors, len(s.errors)),
		touched: make(map[string]bool, len(s.touched)),
	}
	for k, v := range s.errors {
		next.errors[k] = v
	}
	for k := range s.touched {
		next.touched[k] = true
	}
	return next
}

// ValidateAll evaluates every field of rules against values and returns only
// the failing entries.
func ValidateAll(values Values, rules RuleSet) Errors {
	errs := Errors{}
	for field, rule := range rules {
		if msg := rule.Evaluate(values[field], values); msg != "" {
			errs[field] = msg
		}
	}
	return errs
}

// IsValid is true iff errs is empty and every required field holds a
// non-blank value.
func IsValid(values Values, errs Errors, rules RuleSet) bool {
	if len(errs) > 0 {
		return false
	}
	for field, rule := range rules {
		if rule.IsRequired() && IsBlank(values[field]) {
			return false
		}
	}
	return true
}

// Snapshot is the wire form of a State.
type Snapshot struct {
	Values  Values   `json:"values" yaml:"values"`
	Errors  Errors   `json:"errors" yaml:"errors"`
	Touched []string `json:"touched" yaml:"touched"`
}

func copyValues(src Values) Values {
	dst := make(Values, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
