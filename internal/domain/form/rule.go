package form

import (
	"regexp"
	"sort"
)

// Values holds the raw input of a form keyed by field name. A raw value is a
// string, a bool (checkboxes) or a number-like value.
type Values map[string]any

// Errors holds the message of every field currently failing validation.
type Errors map[string]string

// Func is a function-style rule. It returns "" when value is valid.
type Func func(value any, all Values) string

// Length pairs a length bound with the message reported when it is violated.
type Length struct {
	Value   int
	Message string
}

// Pattern pairs a regular expression with its failure message.
type Pattern struct {
	Regex   *regexp.Regexp
	Message string
}

// Rule is the declarative descriptor attached to one field. Every clause is
// optional; a zero Rule accepts any value.
type Rule struct {
	Required  string
	MinLength *Length
	MaxLength *Length
	Pattern   *Pattern
	Custom    Func
	// DependsOn lists the fields this rule reads besides its own value.
	DependsOn []string
}

// Check wraps a function-style rule.
func Check(fn Func, dependsOn ...string) Rule {
	return Rule{Custom: fn, DependsOn: dependsOn}
}

// MustPattern compiles expr and panics on failure. Meant for package-level rule sets.
func MustPattern(expr, message string) *Pattern {
	return &Pattern{Regex: regexp.MustCompile(expr), Message: message}
}

// Evaluate runs the rule clauses in pipeline order and returns the first failure.
func (r Rule) Evaluate(value any, all Values) string {
	for _, phase := range Pipeline {
		if msg := phase.check(r, value, all); msg != "" {
			return msg
		}
	}
	return ""
}

// IsRequired reports whether the rule carries a required clause.
func (r Rule) IsRequired() bool { return r.Required != "" }

// RuleSet maps field names to their rule. Fields absent from the set are
// never validated.
type RuleSet map[string]Rule

// Has reports whether field has a rule.
func (rs RuleSet) Has(field string) bool {
	_, ok := rs[field]
	return ok
}

// Fields returns the ruled field names in lexical order.
func (rs RuleSet) Fields() []string {
	out := make([]string, 0, len(rs))
	for f := range rs {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Dependents returns the fields whose rule depends on field, in lexical order.
func (rs RuleSet) Dependents(field string) []string {
	var out []string
	for name, rule := range rs {
		if name == field {
			continue
		}
		for _, dep := range rule.DependsOn {
			if dep == field {
				out = append(out, name)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}

// Merge returns a new set with the rules of other overriding those of rs.
func (rs RuleSet) Merge(other RuleSet) RuleSet {
	out := make(RuleSet, len(rs)+len(other))
	for k, v := range rs {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}
