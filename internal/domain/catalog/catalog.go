package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Victor-armando18/vinyl-store/internal/domain/form"
	"github.com/Victor-armando18/vinyl-store/internal/domain/form/forms"
	"github.com/Victor-armando18/vinyl-store/internal/domain/validators"
)

// Product is a record of the vinyl catalog as maintained from the back-office.
type Product struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Artist        string  `json:"artist"`
	Description   string  `json:"description,omitempty"`
	Price         float64 `json:"price"`
	Stock         int     `json:"stock"`
	CriticalStock *int    `json:"criticalStock,omitempty"`
	Category      string  `json:"category"`
	Image         string  `json:"image,omitempty"`
}

// LowStock reports whether the stock reached the critical threshold.
func (p Product) LowStock() bool {
	return p.CriticalStock != nil && p.Stock <= *p.CriticalStock
}

type User struct {
	RUN      string `json:"run"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
}

type Category struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ProductFromValues converts validated product form values.
func ProductFromValues(v form.Values) (Product, error) {
	price, err := strconv.ParseFloat(text(v, forms.FieldPrice), 64)
	if err != nil {
		return Product{}, fmt.Errorf("precio: %w", err)
	}
	stock, err := strconv.Atoi(text(v, forms.FieldStock))
	if err != nil {
		return Product{}, fmt.Errorf("stock: %w", err)
	}
	p := Product{
		Code:        text(v, forms.FieldCode),
		Name:        text(v, forms.FieldName),
		Artist:      text(v, forms.FieldArtist),
		Description: text(v, forms.FieldDescription),
		Price:       price,
		Stock:       stock,
		Category:    text(v, forms.FieldCategory),
		Image:       text(v, forms.FieldImage),
	}
	if raw := text(v, forms.FieldCriticalStock); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Product{}, fmt.Errorf("stockCritico: %w", err)
		}
		p.CriticalStock = &n
	}
	return p, nil
}

// UserFromValues converts validated user or sign-up form values. Sign-ups
// carry no role and become customers.
func UserFromValues(v form.Values) User {
	role := text(v, forms.FieldRole)
	if role == "" {
		role = "cliente"
	}
	return User{
		RUN:      validators.NormalizeRUN(text(v, forms.FieldRUN)),
		Name:     text(v, forms.FieldName),
		LastName: text(v, forms.FieldLastName),
		Email:    strings.ToLower(text(v, forms.FieldEmail)),
		Phone:    text(v, forms.FieldPhone),
		Role:     role,
	}
}

func CategoryFromValues(v form.Values) Category {
	return Category{
		Name:        text(v, forms.FieldName),
		Description: text(v, forms.FieldDescription),
	}
}

func text(v form.Values, field string) string {
	return strings.TrimSpace(form.Text(v[field]))
}
