package console

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	SoundryTeal = lipgloss.Color("#2DD4BF")
	DimGray     = lipgloss.Color("#6B7280")
	LightGray   = lipgloss.Color("#9CA3AF")
	White       = lipgloss.Color("#F9FAFB")
	Green       = lipgloss.Color("#10B981")
	Red         = lipgloss.Color("#EF4444")
	Amber       = lipgloss.Color("#F59E0B")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(SoundryTeal)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	SkipStyle = lipgloss.NewStyle().
			Foreground(Amber)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	MatchStyle = lipgloss.NewStyle().
			Foreground(SoundryTeal).
			Bold(true)

	SummaryBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SoundryTeal).
			Padding(0, 2)
)

// Raw outcome markers (unstyled)
const (
	SuccessChar = "✓"
	SkipChar    = "•"
	FailChar    = "✗"
)
