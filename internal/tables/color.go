package tables

import "sync"

var DefaultPalette = []string{
	"#3B82F6", // blue
	"#10B981", // green
	"#F59E0B", // amber
	"#EF4444", // red
	"#8B5CF6", // violet
	"#EC4899", // pink
	"#14B8A6", // teal
	"#F97316", // orange
}

// ColorAssigner hands out palette colors round-robin in first-seen order.
// A group keeps its color for the life of the assigner; entries are never removed.
type ColorAssigner struct {
	mu       sync.Mutex
	palette  []string
	assigned map[string]string
	next     int
}

func NewColorAssigner(palette []string) *ColorAssigner {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	p := make([]string, len(palette))
	copy(p, palette)
	return &ColorAssigner{
		palette:  p,
		assigned: make(map[string]string),
	}
}

func (a *ColorAssigner) Assign(groupID string) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if c, ok := a.assigned[groupID]; ok {
		return c
	}
	c := a.palette[a.next%len(a.palette)]
	a.next++
	a.assigned[groupID] = c
	return c
}

var processColors = NewColorAssigner(DefaultPalette)

// AssignGroupColor uses the process-wide assigner.
func AssignGroupColor(groupID string) string {
	return processColors.Assign(groupID)
}
