package infrastructure

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/Victor-armando18/vinyl-store/internal/domain/form"
	"github.com/Victor-armando18/vinyl-store/internal/interfaces"
	"github.com/diegoholiveira/jsonlogic/v3"
	"github.com/goccy/go-json"
)

type JsonLogicExecutor struct{}

var registerBuiltins sync.Once

func NewJsonLogicExecutor() *JsonLogicExecutor {
	j := &JsonLogicExecutor{}
	registerBuiltins.Do(func() {
		j.RegisterCustomOperator("length", CustomLength)
		j.RegisterCustomOperator("number", CustomNumber)
		j.RegisterCustomOperator("round", CustomRound)
	})
	return j
}

// RegisterCustomOperator exposes fn to every rule under name. Operators are
// global to the jsonlogic package, so register them before serving.
func (j *JsonLogicExecutor) RegisterCustomOperator(name string, fn func(args ...any) any) {
	jsonlogic.AddOperator(name, func(values, data any) any {
		if args, ok := values.([]any); ok {
			return fn(args...)
		}
		return fn(values)
	})
}

func (j *JsonLogicExecutor) Execute(ctx context.Context, logic map[string]any, data map[string]any) (any, error) {
	ruleJSON, err := json.Marshal(logic)
	if err != nil {
		return nil, fmt.Errorf("%w: encode rule: %v", interfaces.ErrRuleExecutionFailed, err)
	}
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: encode data: %v", interfaces.ErrRuleExecutionFailed, err)
	}

	var resultBuffer bytes.Buffer
	if err := jsonlogic.Apply(bytes.NewReader(ruleJSON), bytes.NewReader(dataJSON), &resultBuffer); err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrRuleExecutionFailed, err)
	}

	out := bytes.TrimSpace(resultBuffer.Bytes())
	if len(out) == 0 || string(out) == "null" {
		return nil, nil
	}
	var res any
	if err := json.Unmarshal(out, &res); err != nil {
		return nil, fmt.Errorf("%w: decode result: %v", interfaces.ErrRuleExecutionFailed, err)
	}
	return res, nil
}

// Truthy follows JsonLogic truthiness: false, 0, "", null and empty arrays are false.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	default:
		return true
	}
}

// CustomLength counts the characters of the text form of its argument.
func CustomLength(args ...any) any {
	if len(args) == 0 {
		return 0.0
	}
	return float64(utf8.RuneCountInString(form.Text(args[0])))
}

// CustomNumber parses its argument as a number; unreadable input gives null.
func CustomNumber(args ...any) any {
	if len(args) == 0 {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(form.Text(args[0])), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}

func CustomRound(args ...any) any {
	if len(args) == 0 {
		return 0.0
	}
	if v, ok := args[0].(float64); ok {
		return math.Round(v)
	}
	return args[0]
}
