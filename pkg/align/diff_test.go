package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCharDiff(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want string
	}{
		{"equal spaces are kept", "ab cd", "ab ce", "ab c(d?)(e?)"},
		{"shorter side of a replace first", "Smyth", "Smiith", "Sm(y?)(i?)(i?)th"},
		{"insertion", "Buroughs", "Burroughs", "Bu(r?)roughs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, charDiff(tt.a, tt.b).String())
		})
	}
}
