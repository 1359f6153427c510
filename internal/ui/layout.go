package ui

import "time"

// Terminal size thresholds.
const (
	// LayoutSideBySideWidth is the minimum width to put the editor and the
	// preview next to each other.
	LayoutSideBySideWidth = 120

	// ListMaxRows caps the snippet list height.
	ListMaxRows = 8
)

// Timing constants.
const (
	// StatusTimeout is how long a status message stays in the footer.
	StatusTimeout = 4 * time.Second

	// DefaultRequestTimeout bounds each save or admin request.
	DefaultRequestTimeout = 10 * time.Second
)
