package pathutils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandHome(t *testing.T) {
	home := HomeDir()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"single char", "k", "k"},
		{"tilde only", "~", home},
		{"tilde slash", "~/keys.yaml", filepath.Join(home, "keys.yaml")},
		{"absolute", "/etc/absrsa/keys.yaml", "/etc/absrsa/keys.yaml"},
		{"tilde in the middle", "keys/~/a.yaml", "keys/~/a.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.input))
		})
	}
}
