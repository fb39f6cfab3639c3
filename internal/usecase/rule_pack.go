package usecase

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Victor-armando18/vinyl-store/internal/domain"
	"github.com/Victor-armando18/vinyl-store/internal/domain/form"
	"github.com/Victor-armando18/vinyl-store/internal/domain/form/forms"
	"github.com/Victor-armando18/vinyl-store/internal/infrastructure"
	"github.com/Victor-armando18/vinyl-store/internal/interfaces"
)

const defaultLogicMessage = "El valor no es válido"

// CompileRulePack turns a declarative pack into rule sets keyed by form.
// Forms that extend a built-in form start from its rules.
func CompileRulePack(def *domain.RulePackDefinition, executor interfaces.RuleExecutor) (map[string]form.RuleSet, error) {
	builtin := forms.Builtin()
	out := make(map[string]form.RuleSet, len(def.Forms))
	for name, fd := range def.Forms {
		rules := form.RuleSet{}
		if fd.Extends != "" {
			base, ok := builtin[fd.Extends]
			if !ok {
				return nil, fmt.Errorf("%w: form %s extends unknown form %s", domain.ErrInvalidRulePack, name, fd.Extends)
			}
			rules = rules.Merge(base)
		}
		for field, fieldDef := range fd.Fields {
			rule, err := compileField(fieldDef, executor)
			if err != nil {
				return nil, fmt.Errorf("%w: %s.%s: %v", domain.ErrInvalidRulePack, name, field, err)
			}
			rules[field] = rule
		}
		out[name] = rules
	}
	return out, nil
}

func compileField(def domain.FieldDefinition, executor interfaces.RuleExecutor) (form.Rule, error) {
	rule := form.Rule{Required: def.Required}
	if def.MinLength != nil {
		rule.MinLength = &form.Length{Value: def.MinLength.Value, Message: def.MinLength.Message}
	}
	if def.MaxLength != nil {
		rule.MaxLength = &form.Length{Value: def.MaxLength.Value, Message: def.MaxLength.Message}
	}
	if def.Pattern != nil {
		re, err := regexp.Compile(def.Pattern.Regex)
		if err != nil {
			return form.Rule{}, err
		}
		rule.Pattern = &form.Pattern{Regex: re, Message: def.Pattern.Message}
	}

	var checks []form.Func
	if def.Validator != "" {
		fn, deps, ok := forms.Named(def.Validator)
		if !ok {
			return form.Rule{}, fmt.Errorf("unknown validator %q", def.Validator)
		}
		checks = append(checks, fn)
		rule.DependsOn = append(rule.DependsOn, deps...)
	}
	if len(def.Logic) > 0 {
		msg := def.Message
		if msg == "" {
			msg = defaultLogicMessage
		}
		checks = append(checks, logicRule(executor, def.Logic, msg))
	}
	rule.DependsOn = append(rule.DependsOn, def.DependsOn...)

	switch len(checks) {
	case 0:
	case 1:
		rule.Custom = checks[0]
	default:
		rule.Custom = func(v any, all form.Values) string {
			for _, c := range checks {
				if msg := c(v, all); msg != "" {
					return msg
				}
			}
			return ""
		}
	}
	return rule, nil
}

// logicRule evaluates a JsonLogic expression with the field value under
// "value", every raw value under "values" and the numeric ones under "num".
// A rule that cannot be evaluated fails with its message.
func logicRule(executor interfaces.RuleExecutor, logic map[string]any, message string) form.Func {
	return func(v any, all form.Values) string {
		data := map[string]any{
			"value":  v,
			"values": map[string]any(all),
			"num":    numericView(all),
		}
		out, err := executor.Execute(context.Background(), logic, data)
		if err != nil || !infrastructure.Truthy(out) {
			return message
		}
		return ""
	}
}

func numericView(values form.Values) map[string]any {
	out := map[string]any{}
	for k, v := range values {
		switch t := v.(type) {
		case float64:
			out[k] = t
		case int:
			out[k] = float64(t)
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
				out[k] = f
			}
		}
	}
	return out
}

// LoadRuleSets returns the built-in rule sets overridden by the forms of
// the pack version served by loader.
func LoadRuleSets(ctx context.Context, loader interfaces.RulePackLoader, executor interfaces.RuleExecutor, version string) (map[string]form.RuleSet, error) {
	def, err := loader.Load(ctx, version)
	if err != nil {
		return nil, err
	}
	compiled, err := CompileRulePack(def, executor)
	if err != nil {
		return nil, err
	}
	sets := forms.Builtin()
	for name, rules := range compiled {
		sets[name] = rules
	}
	return sets, nil
}
