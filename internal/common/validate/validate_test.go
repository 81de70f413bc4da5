package validate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type priced struct {
	Price decimal.Decimal `validate:"price"`
}

type amount struct {
	Amount decimal.Decimal `validate:"required,gt=0"`
}

func TestValidatePrice(t *testing.T) {
	tests := []struct {
		name    string
		input   priced
		wantErr bool
	}{
		{name: "positive price: ok", input: priced{Price: decimal.RequireFromString("10.50")}},
		{name: "zero price: ok", input: priced{Price: decimal.Zero}},
		{name: "negative price: error", input: priced{Price: decimal.NewFromInt(-1)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Get().Struct(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDecimalGreaterThanZero(t *testing.T) {
	assert.NoError(t, Get().Struct(amount{Amount: decimal.RequireFromString("0.01")}))
	assert.Error(t, Get().Struct(amount{Amount: decimal.Zero}))
	assert.Error(t, Get().Struct(amount{Amount: decimal.NewFromInt(-5)}))
}
