package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientSupported(t *testing.T) {
	tests := []struct {
		name    string
		min     string
		version string
		want    bool
	}{
		{"above minimum", "1.2.0", "1.3.0", true},
		{"at minimum", "1.2.0", "1.2.0", true},
		{"below minimum", "1.2.0", "1.1.9", false},
		{"v prefix tolerated", "v1.2.0", "1.2.1", true},
		{"no minimum stated", "", "0.0.1", true},
		{"dev build always accepted", "9.0.0", "(devel)", true},
		{"empty version accepted", "1.0.0", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &ServerMeta{MinClientVersion: tt.min}
			assert.Equal(t, tt.want, m.ClientSupported(tt.version))
		})
	}
}
