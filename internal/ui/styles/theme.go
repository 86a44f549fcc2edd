// Copyright (c) 2025 TaskFlow Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styled components for the application. It detects the
// terminal's color capability and adjusts accordingly.
type Theme struct {
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Containers
	App       lipgloss.Style
	Container lipgloss.Style

	// Header
	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style
	HeaderBrand    lipgloss.Style

	// Task list
	TaskItem         lipgloss.Style
	TaskItemSelected lipgloss.Style
	TaskTitleDone    lipgloss.Style
	TaskCheckDone    lipgloss.Style
	TaskCheckOpen    lipgloss.Style
	TaskMeta         lipgloss.Style
	TaskDescription  lipgloss.Style

	// Chat bubbles
	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style

	// Sidebar (conversation history)
	Sidebar             lipgloss.Style
	SidebarItem         lipgloss.Style
	SidebarItemSelected lipgloss.Style
	SidebarItemActive   lipgloss.Style
	SidebarMeta         lipgloss.Style

	// Input area
	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style
	CharCount        lipgloss.Style
	CharCountWarning lipgloss.Style
	CharCountDanger  lipgloss.Style

	// Status bar
	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// Forms (login, settings, edit)
	FormBox        lipgloss.Style
	FormTitle      lipgloss.Style
	FormLabel      lipgloss.Style
	FormError      lipgloss.Style
	FormHint       lipgloss.Style
	ButtonActive   lipgloss.Style
	ButtonInactive lipgloss.Style

	// Overlays
	DialogBox    lipgloss.Style
	DialogTitle  lipgloss.Style
	DialogPrompt lipgloss.Style

	// Quota banner
	QuotaNotice  lipgloss.Style
	QuotaCounter lipgloss.Style
}

// NewTheme creates a theme with all styles configured from the detected
// terminal background.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// ApplyPreference forces the light or dark palette when the config says so.
// "auto" keeps the detected background.
func ApplyPreference(theme string) {
	switch theme {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo).
		Background(SurfaceDim).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.HeaderBrand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	// Task list
	t.TaskItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.TaskItemSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(SelectionBg).
		Bold(true).
		Padding(0, 1)

	t.TaskTitleDone = lipgloss.NewStyle().
		Foreground(TextMuted).
		Strikethrough(true)

	t.TaskCheckDone = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.TaskCheckOpen = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.TaskMeta = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.TaskDescription = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Chat bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 2).
		MarginLeft(4)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(AssistantBubbleFg).
		Background(AssistantBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(AssistantBubbleBorder).
		Padding(0, 2).
		MarginRight(4)

	// Sidebar
	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(Overlay).
		PaddingRight(1)

	t.SidebarItem = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.SidebarItemSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(SelectionBg).
		Padding(0, 1)

	t.SidebarItemActive = lipgloss.NewStyle().
		Foreground(Indigo).
		Bold(true).
		Padding(0, 1)

	t.SidebarMeta = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Indigo).
		Bold(true)

	t.InputText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.CharCount = lipgloss.NewStyle().
		Foreground(TextMuted).
		Align(lipgloss.Right)

	t.CharCountWarning = lipgloss.NewStyle().
		Foreground(Amber).
		Align(lipgloss.Right)

	t.CharCountDanger = lipgloss.NewStyle().
		Foreground(Rose).
		Align(lipgloss.Right)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Forms
	t.FormBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Indigo).
		Padding(1, 3)

	t.FormTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo).
		MarginBottom(1)

	t.FormLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.FormError = lipgloss.NewStyle().
		Foreground(Rose)

	t.FormHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.ButtonActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Indigo).
		Bold(true).
		Padding(0, 3)

	t.ButtonInactive = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceBright).
		Padding(0, 3)

	// Overlays
	t.DialogBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Background(Surface).
		Padding(1, 3)

	t.DialogTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Rose)

	t.DialogPrompt = lipgloss.NewStyle().
		Foreground(TextPrimary)

	// Quota
	t.QuotaNotice = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.QuotaCounter = lipgloss.NewStyle().
		Foreground(TextMuted)
}
