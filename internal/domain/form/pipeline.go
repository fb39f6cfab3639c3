package form

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

type PipelinePhase string

const (
	Required PipelinePhase = "required"
	Lengths  PipelinePhase = "length"
	Matches  PipelinePhase = "pattern"
	Custom   PipelinePhase = "custom"
)

// Pipeline is the evaluation order of rule clauses. The first failing phase wins.
var Pipeline = []PipelinePhase{Required, Lengths, Matches, Custom}

func (p PipelinePhase) check(r Rule, value any, all Values) string {
	switch p {
	case Required:
		if r.Required != "" && IsBlank(value) {
			return r.Required
		}
	case Lengths:
		if IsBlank(value) {
			return ""
		}
		n := utf8.RuneCountInString(Text(value))
		if r.MinLength != nil && n < r.MinLength.Value {
			return r.MinLength.Message
		}
		if r.MaxLength != nil && n > r.MaxLength.Value {
			return r.MaxLength.Message
		}
	case Matches:
		if r.Pattern == nil || r.Pattern.Regex == nil || IsBlank(value) {
			return ""
		}
		if !r.Pattern.Regex.MatchString(Text(value)) {
			return r.Pattern.Message
		}
	case Custom:
		// Custom rules own their emptiness check, so they always run.
		if r.Custom != nil {
			return r.Custom(value, all)
		}
	}
	return ""
}

// Text renders a raw value as the string a text input would hold. Lists and
// objects have no text form and render as "", so they count as blank.
func Text(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		if math.IsNaN(v) {
			return "NaN"
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case interface{ String() string }:
		return v.String()
	default:
		return ""
	}
}

// IsScalar reports whether value is something a single input can hold:
// nil, a string, a number, a boolean or a Stringer.
func IsScalar(value any) bool {
	switch value.(type) {
	case nil, string, bool, float64, float32, int, int64, int32, interface{ String() string }:
		return true
	}
	return false
}

// IsBlank reports whether a raw value counts as empty: nil, a whitespace-only
// string or an unchecked box.
func IsBlank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case bool:
		return !v
	case string:
		return strings.TrimSpace(v) == ""
	default:
		return strings.TrimSpace(Text(v)) == ""
	}
}
