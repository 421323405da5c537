package logger

import (
	"fmt"
	"strings"
)

// PositionBar renders the playlist position as an ASCII bar
type PositionBar struct {
	current     int
	total       int
	width       int
	enableColor bool
}

// NewPositionBar creates a new position bar
func NewPositionBar(total, width int, enableColor bool) *PositionBar {
	if width < 1 {
		width = 10
	}
	return &PositionBar{
		total:       total,
		width:       width,
		enableColor: enableColor,
	}
}

// Update sets the current 1-based position
func (pb *PositionBar) Update(current int) {
	pb.current = current
}

// Render generates the bar followed by "i of N"
func (pb *PositionBar) Render() string {
	filled := 0
	if pb.total > 0 {
		filled = (pb.current * pb.width) / pb.total
	}
	filled = max(0, min(filled, pb.width))

	bar := "[" + strings.Repeat("=", filled) + strings.Repeat(" ", pb.width-filled) + "]"
	result := fmt.Sprintf("%s %d of %d", bar, pb.current, pb.total)

	if pb.enableColor {
		result = fmt.Sprintf("\033[36m%s\033[0m", result)
	}
	return result
}
