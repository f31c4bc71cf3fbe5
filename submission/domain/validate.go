package domain

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// emailPart recusa qualquer espaço, inclusive \v, U+00A0, U+3000 e o BOM.
// O \s do RE2 sozinho só cobre espaços ASCII.
const emailPart = `[^\s\v\p{Z}\x{FEFF}@]+`

var emailShape = regexp.MustCompile(`^` + emailPart + `@` + emailPart + `\.` + emailPart + `$`)

// ValidEmailFormat só confere o formato local@dominio.tld, não se o domínio existe.
func ValidEmailFormat(email string) bool {
	return emailShape.MatchString(email)
}

// ValidationError carrega a mensagem exibida ao usuário.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }

var (
	ErrFavoriteRequired = &ValidationError{Field: "favorite", Message: "Campo 'favorite' é obrigatório."}
	ErrInvalidEmail     = &ValidationError{Field: "email", Message: "E-mail inválido."}
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return ValidEmailFormat(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate espera uma Submission já saneada. A falta de favorite tem
// precedência sobre e-mail inválido, independente da ordem dos campos.
func (s Submission) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	byField := make(map[string]bool, len(fieldErrs))
	for _, fe := range fieldErrs {
		byField[fe.StructField()] = true
	}
	switch {
	case byField["Favorite"]:
		return ErrFavoriteRequired
	case byField["Email"]:
		return ErrInvalidEmail
	}
	return err
}
