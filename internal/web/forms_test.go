package web

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleForm struct {
	Nome      string `form:"nome" validate:"required"`
	Email     string `form:"email" validate:"required,email"`
	Progresso int    `form:"progresso" validate:"min=0,max=100"`
	Status    string `form:"status" validate:"oneof=a b"`
}

func TestFieldErrors(t *testing.T) {
	form := sampleForm{Email: "x", Progresso: 101, Status: "c"}
	err := validator.New().Struct(form)
	require.Error(t, err)

	got, ok := FieldErrors(&form, err)
	require.True(t, ok)
	assert.Equal(t, map[string]string{
		"nome":      "Campo obrigatório.",
		"email":     "Informe um email válido.",
		"progresso": "Deve ser no máximo 100.",
		"status":    "Selecione uma opção válida.",
	}, got)
}

func TestFieldErrors_NotValidation(t *testing.T) {
	got, ok := FieldErrors(sampleForm{}, errors.New(`strconv.ParseInt: parsing "abc"`))
	assert.False(t, ok)
	assert.Nil(t, got)
}
