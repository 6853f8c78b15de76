package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Cybohr", "cybohr"},
		{"spaces", "Cybohr Ring", "cybohr-ring"},
		{"mixed case", "PrecIOus", "precious"},
		{"punctuation", "  Precious // No. 7 ", "precious-no-7"},
		{"leading and trailing junk", "--Ring--", "ring"},
		{"digits", "Edition 2026", "edition-2026"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.in))
		})
	}
}
