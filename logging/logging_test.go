package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerbosity(t *testing.T) {
	tests := []struct {
		level string
		want  int
	}{
		{"off", -1},
		{"", 0},
		{"warning", 0},
		{"INFO", 1},
		{"debug", 2},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, Verbosity(tt.level))
		})
	}
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger("danube.test"))
}
