// Package forms declares the rule sets of the storefront and back-office
// forms on top of the field validators.
package forms

import (
	"sort"
	"strings"

	"github.com/Victor-armando18/vinyl-store/internal/domain/form"
	"github.com/Victor-armando18/vinyl-store/internal/domain/validators"
)

// Form names.
const (
	Product  = "product"
	User     = "user"
	Register = "register"
	Login    = "login"
	Category = "category"
	Contact  = "contact"
)

// Field names shared by the forms.
const (
	FieldCode            = "codigo"
	FieldName            = "nombre"
	FieldArtist          = "artista"
	FieldDescription     = "descripcion"
	FieldPrice           = "precio"
	FieldStock           = "stock"
	FieldCriticalStock   = "stockCritico"
	FieldCategory        = "categoria"
	FieldImage           = "imagen"
	FieldRUN             = "run"
	FieldLastName        = "apellidos"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldPhone           = "telefono"
	FieldRole            = "rol"
	FieldTerms           = "terminos"
	FieldMessage         = "mensaje"
)

// Text adapts a string check to a function-style rule.
func Text(check func(string) string) form.Func {
	return func(v any, _ form.Values) string { return check(form.Text(v)) }
}

// Named returns the function rule registered under name and the fields it
// reads besides its own value.
func Named(name string) (form.Func, []string, bool) {
	e, ok := named[name]
	return e.fn, e.deps, ok
}

// ValidatorNames lists the names accepted by Named.
func ValidatorNames() []string {
	out := make([]string, 0, len(named))
	for k := range named {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

type namedRule struct {
	fn   form.Func
	deps []string
}

var named = map[string]namedRule{
	"code":          {fn: Text(validators.Code)},
	"name":          {fn: Text(validators.Name)},
	"productName":   {fn: Text(validators.ProductName)},
	"lastName":      {fn: Text(validators.LastName)},
	"artist":        {fn: Text(validators.Artist)},
	"description":   {fn: Text(validators.Description)},
	"message":       {fn: Text(validators.Message)},
	"price":         {fn: Text(validators.Price)},
	"stock":         {fn: Text(validators.Stock)},
	"criticalStock": {fn: criticalStock, deps: []string{FieldStock}},
	"category":      {fn: Text(validators.Category)},
	"imageUrl":      {fn: Text(validators.ImageURL)},
	"email":         {fn: Text(validators.Email)},
	"password":      {fn: Text(validators.Password)},
	"confirmPassword": {
		fn:   confirmPassword,
		deps: []string{FieldPassword},
	},
	"run":   {fn: Text(validators.RUN)},
	"phone": {fn: Text(validators.Phone)},
	"terms": {fn: terms},
}

func criticalStock(v any, all form.Values) string {
	return validators.CriticalStock(form.Text(v), form.Text(all[FieldStock]))
}

func confirmPassword(v any, all form.Values) string {
	return validators.ConfirmPassword(form.Text(v), form.Text(all[FieldPassword]))
}

func terms(v any, _ form.Values) string {
	switch t := v.(type) {
	case bool:
		return validators.Terms(t)
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		return validators.Terms(s == "true" || s == "on")
	}
	return validators.Terms(false)
}

func rule(name string) form.Rule {
	e := named[name]
	return form.Check(e.fn, e.deps...)
}

// required marks a function rule as mandatory for IsValid. The message is
// the same the function itself reports on blank input.
func required(name string) form.Rule {
	r := rule(name)
	r.Required = r.Custom("", form.Values{})
	return r
}

// Builtin returns the rule sets keyed by form name.
func Builtin() map[string]form.RuleSet {
	return map[string]form.RuleSet{
		Product: {
			FieldCode:          required("code"),
			FieldName:          required("productName"),
			FieldArtist:        required("artist"),
			FieldDescription:   rule("description"),
			FieldPrice:         required("price"),
			FieldStock:         required("stock"),
			FieldCriticalStock: rule("criticalStock"),
			FieldCategory:      required("category"),
			FieldImage:         rule("imageUrl"),
		},
		User: {
			FieldRUN:      required("run"),
			FieldName:     required("name"),
			FieldLastName: required("lastName"),
			FieldEmail:    required("email"),
			FieldPhone:    rule("phone"),
			FieldRole: {
				Required: "Debe seleccionar un rol",
			},
		},
		Register: {
			FieldRUN:             required("run"),
			FieldName:            required("name"),
			FieldLastName:        required("lastName"),
			FieldEmail:           required("email"),
			FieldPassword:        required("password"),
			FieldConfirmPassword: required("confirmPassword"),
			FieldPhone:           rule("phone"),
			FieldTerms:           required("terms"),
		},
		Login: {
			FieldEmail: required("email"),
			FieldPassword: {
				Required: "La contraseña es obligatoria",
			},
		},
		Category: {
			FieldName:        required("name"),
			FieldDescription: rule("description"),
		},
		Contact: {
			FieldName:    required("name"),
			FieldEmail:   required("email"),
			FieldMessage: required("message"),
		},
	}
}
