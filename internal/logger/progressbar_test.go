package logger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionBarRender(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    string
	}{
		{"first of ten", 1, 10, "[=         ] 1 of 10"},
		{"half", 5, 10, "[=====     ] 5 of 10"},
		{"last", 10, 10, "[==========] 10 of 10"},
		{"single entry", 1, 1, "[==========] 1 of 1"},
		{"empty collection", 0, 0, "[          ] 0 of 0"},
		{"overflow clamps", 12, 10, "[==========] 12 of 10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewPositionBar(tt.total, 10, false)
			bar.Update(tt.current)
			assert.Equal(t, tt.want, bar.Render())
		})
	}
}

func TestPositionBarColor(t *testing.T) {
	bar := NewPositionBar(4, 4, true)
	bar.Update(2)
	out := bar.Render()
	assert.True(t, strings.HasPrefix(out, "\033[36m"))
	assert.True(t, strings.HasSuffix(out, "\033[0m"))
	assert.Contains(t, out, "[==  ] 2 of 4")
}

func TestPositionBarDefaultWidth(t *testing.T) {
	bar := NewPositionBar(2, 0, false)
	bar.Update(1)
	assert.Equal(t, "[=====     ] 1 of 2", bar.Render())
}
