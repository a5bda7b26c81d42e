package split_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dvidal/divvy/internal/expense/split"
)

func TestReconcile(t *testing.T) {
	for _, tt := range []struct {
		name       string
		target     float64
		currentSum float64
		isValid    bool
		difference float64
	}{
		{name: "balanced", target: 90.00, currentSum: 90.00, isValid: true, difference: 0},
		{name: "balanced after rounding", target: 0.3, currentSum: 0.1 + 0.2, isValid: true, difference: 0},
		{name: "short by five", target: 50.00, currentSum: 45.00, isValid: false, difference: -5.00},
		{name: "over by one cent", target: 50.00, currentSum: 50.01, isValid: false, difference: 0.01},
		{name: "under by one cent", target: 100.00, currentSum: 99.99, isValid: false, difference: -0.01},
		{name: "sub-cent mismatch is forgiven", target: 25.00, currentSum: 25.004, isValid: true, difference: 0},
	} {
		t.Run(tt.name, func(t *testing.T) {
			rec := split.Reconcile(tt.target, tt.currentSum)
			assert.Equal(t, tt.isValid, rec.IsValid)
			assert.Equal(t, tt.difference, rec.Difference)
		})
	}
}
