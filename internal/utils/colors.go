package utils

// Terminal color codes using ANSI escape sequences
const (
	ResetColor   = "\033[0m"
	RedColor     = "\033[31m" // errors, failed files
	GreenColor   = "\033[32m" // appended playlists
	YellowColor  = "\033[33m" // skipped files
	BlueColor    = "\033[34m" // progress
	MagentaColor = "\033[35m"
	CyanColor    = "\033[36m"
)

// NoColor disables ANSI coloring, e.g. when output is redirected to a file.
var NoColor bool

// ColoredText wraps text with color codes and reset at the end
func ColoredText(text string, color string) string {
	if NoColor {
		return text
	}
	return color + text + ResetColor
}

// Info returns blue-colored text
func Info(text string) string {
	return ColoredText(text, BlueColor)
}

// Success returns green-colored text
func Success(text string) string {
	return ColoredText(text, GreenColor)
}

// Warning returns yellow-colored text
func Warning(text string) string {
	return ColoredText(text, YellowColor)
}

// Error returns red-colored text
func Error(text string) string {
	return ColoredText(text, RedColor)
}

// Highlight returns magenta-colored text for playlist names in summaries
func Highlight(text string) string {
	return ColoredText(text, MagentaColor)
}

// Debug returns cyan-colored text
func Debug(text string) string {
	return ColoredText(text, CyanColor)
}
