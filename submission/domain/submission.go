package domain

import (
	"strings"
	"unicode/utf8"
)

// Limites em runes, aplicados depois do trim.
const (
	MaxNameLen     = 100
	MaxEmailLen    = 254
	MaxFavoriteLen = 200
	MaxWhyLen      = 500
)

type Submission struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,emailshape"`
	Favorite string `json:"favorite" validate:"required"`
	Why      string `json:"why"`
}

// Sanitize faz trim e corta em max runes. O trim final mantém a operação
// idempotente quando o corte cai logo depois de um espaço.
func Sanitize(s string, max int) string {
	s = strings.TrimSpace(s)
	if max >= 0 && utf8.RuneCountInString(s) > max {
		s = string([]rune(s)[:max])
		s = strings.TrimSpace(s)
	}
	return s
}

// Sanitized devolve uma cópia com todos os campos saneados.
func (s Submission) Sanitized() Submission {
	return Submission{
		Name:     Sanitize(s.Name, MaxNameLen),
		Email:    Sanitize(s.Email, MaxEmailLen),
		Favorite: Sanitize(s.Favorite, MaxFavoriteLen),
		Why:      Sanitize(s.Why, MaxWhyLen),
	}
}

// FromFields monta uma Submission a partir de um objeto JSON já decodificado.
// Valores que não são string (número, null, objeto...) viram "".
func FromFields(fields map[string]any) Submission {
	text := func(k string) string {
		v, _ := fields[k].(string)
		return v
	}
	return Submission{
		Name:     text("name"),
		Email:    text("email"),
		Favorite: text("favorite"),
		Why:      text("why"),
	}
}
