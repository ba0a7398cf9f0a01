package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRFCRule(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterCustomValidations(v))

	cases := []struct {
		rfc   string
		valid bool
	}{
		{"AAA010101AAA", true},  // persona moral
		{"GARC800101XY2", true}, // persona física
		{"ÑUL950505AB1", true},
		{"aaa010101aaa", false}, // minúsculas
		{"AAA0101AAA", false},   // fecha incompleta
		{"AAA010101AAAA5", false},
		{"", false},
	}

	for _, tc := range cases {
		err := v.Var(tc.rfc, "rfc")
		if tc.valid {
			assert.NoError(t, err, tc.rfc)
		} else {
			assert.Error(t, err, tc.rfc)
		}
	}
}
