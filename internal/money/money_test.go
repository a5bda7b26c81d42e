package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dvidal/divvy/internal/money"
)

func TestRound2(t *testing.T) {
	for _, tt := range []struct {
		name     string
		in       float64
		expected float64
	}{
		{name: "thirds round down", in: 100.0 / 3, expected: 33.33},
		{name: "half rounds away from zero", in: 0.125, expected: 0.13},
		{name: "negative half rounds away from zero", in: -0.125, expected: -0.13},
		{name: "already two decimals", in: 42.10, expected: 42.10},
		{name: "binary fraction noise", in: 0.1 + 0.2, expected: 0.3},
		{name: "truncates extra precision", in: 19.999, expected: 20.0},
		{name: "zero", in: 0, expected: 0},
	} {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, money.Round2(tt.in))
		})
	}
}

func TestEqualsAtCent(t *testing.T) {
	assert.True(t, money.EqualsAtCent(0.1+0.2, 0.3))
	assert.True(t, money.EqualsAtCent(10.004, 10.0))
	assert.True(t, money.EqualsAtCent(33.33, 100.0/3-0.003))
	assert.False(t, money.EqualsAtCent(10.01, 10.0))
	assert.False(t, money.EqualsAtCent(99.99, 100.0))
}
