package web

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// MsgInvalidForm is shown above a form that failed validation.
const MsgInvalidForm = "Verifique os campos destacados."

// FieldErrors maps binding failures to messages keyed by form field name.
// It returns false when err is not a validation failure, e.g. a number
// that does not parse.
func FieldErrors(form any, err error) (map[string]string, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	t := reflect.TypeOf(form)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if sf, ok := t.FieldByName(fe.StructField()); ok {
			if tag := sf.Tag.Get("form"); tag != "" {
				name = tag
			}
		}
		out[name] = fieldMessage(fe)
	}
	return out, true
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Campo obrigatório."
	case "email":
		return "Informe um email válido."
	case "min":
		return fmt.Sprintf("Deve ser no mínimo %s.", fe.Param())
	case "max":
		return fmt.Sprintf("Deve ser no máximo %s.", fe.Param())
	case "oneof":
		return "Selecione uma opção válida."
	default:
		return "Valor inválido."
	}
}
