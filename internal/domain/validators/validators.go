// Package validators holds the field checks shared by the storefront and
// back-office forms. Each check takes the raw input and returns "" when it
// is valid, or the message to show next to the field.
package validators

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MinCodeLength     = 3
	MaxNameLength     = 50
	MaxLongNameLength = 100
	MaxTextLength     = 500
	MaxEmailLength    = 100
	MinPasswordLength = 6
	MaxPasswordLength = 10
	MinRUNLength      = 7
	MaxRUNLength      = 9
)

// AllowedEmailDomains are the only mail suffixes accepted on sign-up.
var AllowedEmailDomains = []string{"@duoc.cl", "@profesor.duoc.cl", "@gmail.com"}

var (
	imageURLPattern = regexp.MustCompile(`(?i)^https?://.+\.(jpg|jpeg|png|gif|webp)$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	runPattern      = regexp.MustCompile(`^[0-9]+[0-9K]$`)
	phonePattern    = regexp.MustCompile(`^[0-9+\-\s()]{8,}$`)
	runSeparators   = strings.NewReplacer(".", "", "-", "", " ", "")
)

func blank(v string) bool { return strings.TrimSpace(v) == "" }

func length(v string) int { return utf8.RuneCountInString(strings.TrimSpace(v)) }

// Code validates a product code.
func Code(v string) string {
	if blank(v) {
		return "El código es obligatorio"
	}
	if length(v) < MinCodeLength {
		return fmt.Sprintf("El código debe tener al menos %d caracteres", MinCodeLength)
	}
	return ""
}

// RequiredText builds a check for a mandatory text field named label
// holding at most max characters.
func RequiredText(label string, max int) func(string) string {
	return func(v string) string {
		if blank(v) {
			return fmt.Sprintf("%s es obligatorio", label)
		}
		if length(v) > max {
			return fmt.Sprintf("%s no puede superar los %d caracteres", label, max)
		}
		return ""
	}
}

// OptionalText builds a check for a free text field of at most max characters.
func OptionalText(label string, max int) func(string) string {
	return func(v string) string {
		if length(v) > max {
			return fmt.Sprintf("%s no puede superar los %d caracteres", label, max)
		}
		return ""
	}
}

var (
	Name        = RequiredText("El nombre", MaxNameLength)
	LastName    = RequiredText("El apellido", MaxLongNameLength)
	Artist      = RequiredText("El artista", MaxLongNameLength)
	ProductName = RequiredText("El nombre", MaxLongNameLength)
	Description = OptionalText("La descripción", MaxTextLength)
	Message     = RequiredText("El mensaje", MaxTextLength)
)

// Price validates a mandatory, non-negative decimal amount.
func Price(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "El precio es obligatorio"
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return "El precio debe ser un número válido"
	}
	if f < 0 {
		return "El precio no puede ser negativo"
	}
	return ""
}

// Stock validates a mandatory, non-negative integer amount.
func Stock(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "El stock es obligatorio"
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return "El stock debe ser un número entero válido"
	}
	if n < 0 {
		return "El stock no puede ser negativo"
	}
	return ""
}

// CriticalStock validates the optional alert threshold of a product. When
// stock holds a valid integer the threshold may not exceed it.
func CriticalStock(v, stock string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return "El stock crítico debe ser un número entero válido"
	}
	if n < 0 {
		return "El stock crítico no puede ser negativo"
	}
	if s, err := strconv.Atoi(strings.TrimSpace(stock)); err == nil && n > s {
		return "El stock crítico no puede ser mayor al stock"
	}
	return ""
}

// Category requires a selection.
func Category(v string) string {
	if blank(v) {
		return "Debe seleccionar una categoría"
	}
	return ""
}

// ImageURL accepts an empty value or an http(s) link to a picture.
func ImageURL(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !imageURLPattern.MatchString(v) {
		return "La URL de la imagen debe ser http(s) y terminar en jpg, jpeg, png, gif o webp"
	}
	return ""
}

// Email validates a mandatory address on one of AllowedEmailDomains.
func Email(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "El correo es obligatorio"
	}
	if utf8.RuneCountInString(v) > MaxEmailLength {
		return fmt.Sprintf("El correo no puede superar los %d caracteres", MaxEmailLength)
	}
	if !emailPattern.MatchString(v) {
		return "El formato del correo no es válido"
	}
	lower := strings.ToLower(v)
	for _, d := range AllowedEmailDomains {
		if strings.HasSuffix(lower, d) {
			return ""
		}
	}
	return "Solo se permiten correos " + strings.Join(AllowedEmailDomains, ", ")
}

// Password validates length bounds and character classes.
func Password(v string) string {
	if blank(v) {
		return "La contraseña es obligatoria"
	}
	n := utf8.RuneCountInString(v)
	if n < MinPasswordLength || n > MaxPasswordLength {
		return fmt.Sprintf("La contraseña debe tener entre %d y %d caracteres", MinPasswordLength, MaxPasswordLength)
	}
	var lower, upper, digit bool
	for _, r := range v {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !lower || !upper || !digit {
		return "La contraseña debe contener al menos una minúscula, una mayúscula y un número"
	}
	return ""
}

// ConfirmPassword requires v to repeat password exactly.
func ConfirmPassword(v, password string) string {
	if blank(v) {
		return "Debe confirmar la contraseña"
	}
	if v != password {
		return "Las contraseñas no coinciden"
	}
	return ""
}

// RUN validates the shape of a Chilean national identifier. Separators are
// ignored; the check digit itself is not verified.
func RUN(v string) string {
	if blank(v) {
		return "El RUN es obligatorio"
	}
	clean := NormalizeRUN(v)
	if n := len(clean); n < MinRUNLength || n > MaxRUNLength {
		return fmt.Sprintf("El RUN debe tener entre %d y %d caracteres", MinRUNLength, MaxRUNLength)
	}
	if !runPattern.MatchString(clean) {
		return "El formato del RUN no es válido"
	}
	return ""
}

// NormalizeRUN strips separators and upper-cases the check digit.
func NormalizeRUN(v string) string {
	return strings.ToUpper(runSeparators.Replace(strings.TrimSpace(v)))
}

// Phone accepts an empty value or a loose phone number shape.
func Phone(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !phonePattern.MatchString(v) {
		return "El teléfono no es válido"
	}
	return ""
}

// Terms requires the acceptance checkbox to be ticked.
func Terms(accepted bool) string {
	if !accepted {
		return "Debe aceptar los términos y condiciones"
	}
	return ""
}
