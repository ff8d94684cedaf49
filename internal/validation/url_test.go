package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"plain http", "http://localhost:5000", false},
		{"https", "https://127.0.0.1:8443/keypad", false},
		{"file scheme", "file:///etc/passwd", true},
		{"javascript scheme", "javascript:alert(1)", true},
		{"shell metacharacter", "http://localhost:5000/;rm", true},
		{"backtick", "http://localhost`id`", true},
		{"embedded space", "http://localhost:5000/a b", true},
		{"no host", "http://", true},
		{"newline", "http://localhost\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
