package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dvidal/divvy/internal/expense/editor"
)

func TestSanitizeAmount(t *testing.T) {
	for _, tt := range []struct {
		in       string
		expected string
	}{
		{in: "", expected: ""},
		{in: "12", expected: "12"},
		{in: "12.34", expected: "12.34"},
		{in: "12.345", expected: "12.34"},
		{in: "1.2.3", expected: "1.23"},
		{in: ".5", expected: ".5"},
		{in: "abc", expected: ""},
		{in: "-5", expected: "5"},
		{in: "$19.99", expected: "19.99"},
		{in: "1a2b.3c4d5", expected: "12.34"},
		{in: "...", expected: "."},
		{in: "00.00", expected: "00.00"},
	} {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, editor.SanitizeAmount(tt.in))
		})
	}
}

func TestParseAmount(t *testing.T) {
	assert.Equal(t, 12.34, editor.ParseAmount("12.34"))
	assert.Equal(t, 0.5, editor.ParseAmount(".5"))
	assert.Equal(t, 1.0, editor.ParseAmount("1."))
	assert.Equal(t, 0.0, editor.ParseAmount(""))
	assert.Equal(t, 0.0, editor.ParseAmount("."))
}
