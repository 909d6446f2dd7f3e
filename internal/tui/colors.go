package tui

// Color constants for the tally theme
const (
	// Base Colors
	ColorBorder = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Primary text (labels, titles)
	ColorSecondaryText = "#B1B8C7" // Secondary text
	ColorDisabledText  = "#6D7383" // Disabled/muted text, future days
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors
	ColorAccentMain   = "#7C3AED" // Month title, cursor border
	ColorAccentBright = "#A78BFA" // Today marker, highlights

	// State Colors
	ColorError   = "#EF4444" // Errors, high priority
	ColorSuccess = "#22C55E" // Completed days, confirmations
	ColorWarning = "#F59E0B" // Streaks, medium priority
)
