package rewards

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateValidation(t *testing.T) {
	// Невалидный ввод отклоняется до обращения к хранилищу,
	// поэтому репозиторий здесь не нужен.
	svc := NewService(nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, "   ", nil, 100)
	assert.Error(t, err, "пустое название недопустимо")

	_, err = svc.Create(ctx, "Coffee voucher", nil, 0)
	assert.Error(t, err, "нулевая цена недопустима")

	_, err = svc.Create(ctx, "Coffee voucher", nil, -5)
	assert.Error(t, err, "отрицательная цена недопустима")
}
