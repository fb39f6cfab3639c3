package interfaces

import (
	"context"

	"github.com/Victor-armando18/vinyl-store/internal/domain"
	"github.com/Victor-armando18/vinyl-store/internal/domain/cart"
	"github.com/Victor-armando18/vinyl-store/internal/domain/form"
	"github.com/goccy/go-json"
)

// Re-exported so usecases need not import domain just for the error.
var ErrRuleExecutionFailed = domain.ErrRuleExecutionFailed

// RulePackLoader loads declarative rule packs (from disk, network, etc.).
type RulePackLoader interface {
	Load(ctx context.Context, version string) (*domain.RulePackDefinition, error)
}

// RuleExecutor evaluates a JsonLogic expression against data.
type RuleExecutor interface {
	Execute(ctx context.Context, logic map[string]any, data map[string]any) (any, error)
}

// CartStore persists carts between requests and restarts.
type CartStore interface {
	Load(ctx context.Context, id string) (cart.Cart, error)
	Save(ctx context.Context, id string, c cart.Cart) error
}

// Submitter performs the create/update action behind a valid form.
type Submitter interface {
	Submit(ctx context.Context, formName string, values form.Values) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, formName string, values form.Values) error

func (f SubmitterFunc) Submit(ctx context.Context, formName string, values form.Values) error {
	return f(ctx, formName, values)
}

// FormResult is what the form facade reports after validating values.
type FormResult struct {
	Values form.Values `json:"values"`
	Errors form.Errors `json:"errors"`
	Valid  bool        `json:"valid"`
}

// FormEvent is a change or blur coming from the display layer.
type FormEvent struct {
	State form.Snapshot `json:"state"`
	Field string        `json:"field"`
	Value any           `json:"value"`
	Kind  string        `json:"kind"`
}

const (
	EventChange = "change"
	EventBlur   = "blur"
)

// EventResult carries the next state and the fields whose message changed.
type EventResult struct {
	State form.Snapshot     `json:"state"`
	Valid bool              `json:"valid"`
	Delta map[string]string `json:"delta"`
}

// FormFacade is the entry point of the form use cases.
type FormFacade interface {
	Forms() []string
	Validate(ctx context.Context, formName string, values form.Values) (*FormResult, error)
	Apply(ctx context.Context, formName string, event FormEvent) (*EventResult, error)
	Patch(ctx context.Context, formName string, values form.Values, patch []byte) (*FormResult, error)
	Submit(ctx context.Context, formName string, values form.Values) (*FormResult, error)
}

// CartView is a cart with its derived totals.
type CartView struct {
	ID         string      `json:"id"`
	Items      []cart.Item `json:"items"`
	TotalItems int         `json:"totalItems"`
	TotalPrice float64     `json:"totalPrice"`
	// Delta is the merge patch from the previous snapshot; empty on reads.
	Delta json.RawMessage `json:"delta,omitempty"`
}

// CartFacade is the entry point of the cart use cases.
type CartFacade interface {
	Create(ctx context.Context) (*CartView, error)
	Get(ctx context.Context, id string) (*CartView, error)
	Add(ctx context.Context, id string, item cart.Item) (*CartView, error)
	Remove(ctx context.Context, id string, itemID cart.ID) (*CartView, error)
	SetQuantity(ctx context.Context, id string, itemID cart.ID, quantity int) (*CartView, error)
	Clear(ctx context.Context, id string) (*CartView, error)
}
