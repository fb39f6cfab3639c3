package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Victor-armando18/vinyl-store/internal/domain"
	"github.com/Victor-armando18/vinyl-store/internal/domain/form"
	"github.com/Victor-armando18/vinyl-store/internal/infrastructure"
	"github.com/Victor-armando18/vinyl-store/internal/infrastructure/diff"
	"github.com/Victor-armando18/vinyl-store/internal/interfaces"
	"go.uber.org/zap"
)

type Differ interface {
	Diff(before, after map[string]string) map[string]string
}

type FormService struct {
	forms     map[string]form.RuleSet
	submitter interfaces.Submitter
	differ    Differ
	logger    *zap.Logger
}

func NewFormService(ruleSets map[string]form.RuleSet, submitter interfaces.Submitter, logger *zap.Logger) *FormService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FormService{
		forms:     ruleSets,
		submitter: submitter,
		differ:    &diff.Differ{},
		logger:    logger,
	}
}

func (s *FormService) Forms() []string {
	out := make([]string, 0, len(s.forms))
	for name := range s.forms {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (s *FormService) Validate(ctx context.Context, formName string, values form.Values) (*interfaces.FormResult, error) {
	rules, err := s.rules(formName)
	if err != nil {
		return nil, err
	}
	if values == nil {
		values = form.Values{}
	}
	if err := checkScalars(values); err != nil {
		return nil, err
	}
	errs := form.ValidateAll(values, rules)
	return &interfaces.FormResult{
		Values: values,
		Errors: errs,
		Valid:  form.IsValid(values, errs, rules),
	}, nil
}

// Apply replays a change or blur on the state held by the client.
func (s *FormService) Apply(ctx context.Context, formName string, event interfaces.FormEvent) (*interfaces.EventResult, error) {
	rules, err := s.rules(formName)
	if err != nil {
		return nil, err
	}
	if event.Field == "" {
		return nil, fmt.Errorf("%w: field is required", domain.ErrInvalidEvent)
	}
	if !form.IsScalar(event.Value) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidValue, event.Field)
	}
	if err := checkScalars(event.State.Values); err != nil {
		return nil, err
	}

	state := form.Restore(rules, event.State)
	before := state.Errors()

	switch event.Kind {
	case interfaces.EventChange, "":
		state = state.SetValue(event.Field, event.Value)
	case interfaces.EventBlur:
		state = state.MarkTouched(event.Field, event.Value)
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", domain.ErrInvalidEvent, event.Kind)
	}

	return &interfaces.EventResult{
		State: state.Snapshot(),
		Valid: state.Valid(),
		Delta: s.differ.Diff(before, state.Errors()),
	}, nil
}

// Patch applies an RFC 6902 patch to values and validates the result.
func (s *FormService) Patch(ctx context.Context, formName string, values form.Values, patch []byte) (*interfaces.FormResult, error) {
	if _, err := s.rules(formName); err != nil {
		return nil, err
	}
	patched, err := infrastructure.ApplyValuesPatch(values, patch)
	if err != nil {
		return nil, err
	}
	return s.Validate(ctx, formName, patched)
}

// Submit validates values and hands them to the submitter only when the
// form is valid. An invalid form yields a *domain.ValidationError along with
// the result carrying the messages.
func (s *FormService) Submit(ctx context.Context, formName string, values form.Values) (*interfaces.FormResult, error) {
	rules, err := s.rules(formName)
	if err != nil {
		return nil, err
	}
	if err := checkScalars(values); err != nil {
		return nil, err
	}

	state, err := form.New(rules, values).Submit(ctx, func(ctx context.Context, v form.Values) error {
		if s.submitter == nil {
			return fmt.Errorf("%w: %s", domain.ErrUnsupportedForm, formName)
		}
		return s.submitter.Submit(ctx, formName, v)
	})
	result := &interfaces.FormResult{
		Values: state.Values(),
		Errors: state.Errors(),
		Valid:  state.Valid(),
	}

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		verr.Form = formName
		s.logger.Info("form rejected",
			zap.String("form", formName),
			zap.Int("errors", len(verr.Errors)))
		return result, verr
	case err != nil:
		s.logger.Warn("form submission failed",
			zap.String("form", formName),
			zap.Error(err))
		return result, err
	}

	s.logger.Info("form submitted", zap.String("form", formName))
	return result, nil
}

func (s *FormService) rules(formName string) (form.RuleSet, error) {
	rules, ok := s.forms[formName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownForm, formName)
	}
	return rules, nil
}

// checkScalars rejects lists and objects, which no rule can read as text.
func checkScalars(values form.Values) error {
	for field, v := range values {
		if !form.IsScalar(v) {
			return fmt.Errorf("%w: %s", domain.ErrInvalidValue, field)
		}
	}
	return nil
}
