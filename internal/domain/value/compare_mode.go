package value

import (
	"fmt"
	"strconv"
	"strings"
)

// CompareMode is the per-row policy for how the price follows competitors.
type CompareMode int

const (
	// ModeNoCompare ignores competitors and pins the price to the floor.
	ModeNoCompare CompareMode = 0
	// ModeFollow always follows the lowest eligible competitor, up or down.
	ModeFollow CompareMode = 1
	// ModeDecreaseOnly follows competitors down but never raises the price.
	ModeDecreaseOnly CompareMode = 2
)

func (m CompareMode) String() string {
	switch m {
	case ModeNoCompare:
		return "no-compare"
	case ModeFollow:
		return "follow"
	case ModeDecreaseOnly:
		return "decrease-only"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// Known reports whether the mode is one the decision engine can dispatch on.
func (m CompareMode) Known() bool {
	return m == ModeNoCompare || m == ModeFollow || m == ModeDecreaseOnly
}

// ParseCompareMode reads a spreadsheet cell. Blank means mode 0.
func ParseCompareMode(cell string) (CompareMode, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return ModeNoCompare, nil
	}

	n, err := strconv.Atoi(cell)
	if err != nil {
		return 0, fmt.Errorf("strconv.Atoi: %w", err)
	}

	return CompareMode(n), nil
}
