package usecase

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Victor-armando18/vinyl-store/internal/domain"
	"github.com/Victor-armando18/vinyl-store/internal/domain/form"
	"github.com/Victor-armando18/vinyl-store/internal/domain/form/forms"
	"github.com/Victor-armando18/vinyl-store/internal/infrastructure"
	"github.com/Victor-armando18/vinyl-store/internal/infrastructure/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader struct {
	def *domain.RulePackDefinition
	err error
}

func (s stubLoader) Load(context.Context, string) (*domain.RulePackDefinition, error) {
	return s.def, s.err
}

func compile(t *testing.T, src string) map[string]form.RuleSet {
	t.Helper()
	def, err := yaml.DecodeRulePack([]byte(src))
	require.NoError(t, err)
	sets, err := CompileRulePack(&def, infrastructure.NewJsonLogicExecutor())
	require.NoError(t, err)
	return sets
}

func TestCompileRulePack_DeclarativeClauses(t *testing.T) {
	sets := compile(t, `
forms:
  review:
    fields:
      titulo:
        required: "El título es obligatorio"
        minLength: {value: 3, message: "Muy corto"}
        maxLength: {value: 10, message: "Muy largo"}
        pattern: {regex: '^[A-Za-z ]+$', message: "Solo letras"}
`)
	rule := sets["review"]["titulo"]

	assert.Equal(t, "El título es obligatorio", rule.Evaluate("", nil))
	assert.Equal(t, "Muy corto", rule.Evaluate("ab", nil))
	assert.Equal(t, "Muy largo", rule.Evaluate("abcdefghijk", nil))
	assert.Equal(t, "Solo letras", rule.Evaluate("abc1", nil))
	assert.Empty(t, rule.Evaluate("Abbey Road", nil))
}

func TestCompileRulePack_ValidatorAndLogic(t *testing.T) {
	sets := compile(t, `
forms:
  offer:
    fields:
      precioOferta:
        validator: price
        logic: {"<": [{"var": "num.precioOferta"}, {"var": "num.precio"}]}
        dependsOn: [precio]
`)
	rules := sets["offer"]
	assert.Equal(t, []string{"precioOferta"}, rules.Dependents("precio"))

	rule := rules["precioOferta"]
	assert.Equal(t, "El precio es obligatorio", rule.Evaluate("", form.Values{"precio": "100"}))
	assert.Equal(t, "El valor no es válido", rule.Evaluate("150", form.Values{"precio": "100", "precioOferta": "150"}))
	assert.Empty(t, rule.Evaluate("90", form.Values{"precio": "100", "precioOferta": "90"}))
}

func TestCompileRulePack_LogicSeesRawValue(t *testing.T) {
	sets := compile(t, `
forms:
  poll:
    fields:
      formato:
        logic: {"in": [{"var": "value"}, ["LP", "EP", "Single"]]}
        message: "Formato desconocido"
`)
	rule := sets["poll"]["formato"]
	assert.Empty(t, rule.Evaluate("EP", nil))
	assert.Equal(t, "Formato desconocido", rule.Evaluate("Cassette", nil))
}

func TestCompileRulePack_Extends(t *testing.T) {
	sets := compile(t, `
forms:
  product:
    extends: product
    fields:
      descripcion:
        required: "La descripción es obligatoria"
`)
	rules := sets[forms.Product]
	assert.True(t, rules.Has(forms.FieldPrice))
	assert.True(t, rules[forms.FieldDescription].IsRequired())
	assert.False(t, forms.Builtin()[forms.Product][forms.FieldDescription].IsRequired())
}

func TestCompileRulePack_Errors(t *testing.T) {
	cases := map[string]string{
		"unknown base": `
forms:
  x:
    extends: nope
`,
		"unknown validator": `
forms:
  x:
    fields:
      a: {validator: nope}
`,
		"bad regex": `
forms:
  x:
    fields:
      a:
        pattern: {regex: '([', message: "m"}
`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			def, err := yaml.DecodeRulePack([]byte(src))
			require.NoError(t, err)
			_, err = CompileRulePack(&def, infrastructure.NewJsonLogicExecutor())
			assert.ErrorIs(t, err, domain.ErrInvalidRulePack)
		})
	}
}

func TestLoadRuleSets_OverlaysBuiltin(t *testing.T) {
	loader := stubLoader{def: &domain.RulePackDefinition{
		Forms: map[string]domain.FormDefinition{
			"login": {Fields: map[string]domain.FieldDefinition{
				"email": {Required: "Ingrese su correo"},
			}},
		},
	}}

	sets, err := LoadRuleSets(context.Background(), loader, infrastructure.NewJsonLogicExecutor(), "v1")
	require.NoError(t, err)
	assert.Equal(t, "Ingrese su correo", sets[forms.Login]["email"].Required)
	assert.False(t, sets[forms.Login].Has(forms.FieldPassword), "a pack form replaces the built-in one")
	assert.Contains(t, sets, forms.Register)
}

func TestLoadRuleSets_LoaderError(t *testing.T) {
	_, err := LoadRuleSets(context.Background(), stubLoader{err: domain.ErrInvalidRulePack}, nil, "v9")
	assert.ErrorIs(t, err, domain.ErrInvalidRulePack)
}

func TestLoadRuleSets_ShippedNewsletter(t *testing.T) {
	wd, _ := os.Getwd()
	loader := infrastructure.NewFileRuleLoader(filepath.Join(wd, "..", "..", "rules"))

	sets, err := LoadRuleSets(context.Background(), loader, infrastructure.NewJsonLogicExecutor(), "v1")
	require.NoError(t, err)
	rules, ok := sets["newsletter"]
	require.True(t, ok)

	name := rules["nombre"]
	assert.Equal(t, "El nombre no puede superar los 30 caracteres", name.Evaluate(strings.Repeat("a", 40), nil))
	assert.Equal(t, "El nombre no puede superar los 30 caracteres", name.Evaluate(strings.Repeat("ñ", 31), nil))
	assert.Empty(t, name.Evaluate(strings.Repeat("ñ", 30), nil))
	assert.Empty(t, name.Evaluate("Ana", nil))

	email := rules["email"]
	assert.Equal(t, "El correo es obligatorio", email.Evaluate("", nil))
	assert.Equal(t, "El formato del correo no es válido", email.Evaluate("fan@", nil))
	assert.Empty(t, email.Evaluate("fan@vinyl.cl", nil))
}
