// ============================================================================
// frege - Script Parser Toolkit
// ============================================================================
//
// Package:     render
// Description: Terminal styles for tree, token and check output
// Author:      msto63
// Created:     2025-10-12
// License:     MIT
// ============================================================================

package render

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette, shared with the explorer TUI
var (
	ColorPrimary   = lipgloss.Color("#8B5CF6") // Violet
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorAccent    = lipgloss.Color("#F59E0B") // Amber
	ColorSuccess   = lipgloss.Color("#10B981") // Emerald
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorTextMuted = lipgloss.Color("#94A3B8") // Slate 400
)

// Styles groups the styles one rendering uses. The zero value renders
// plain text.
type Styles struct {
	NodeType  lipgloss.Style
	Field     lipgloss.Style
	Attribute lipgloss.Style
	Literal   lipgloss.Style
	Branch    lipgloss.Style
	Header    lipgloss.Style
	Kind      lipgloss.Style
	OK        lipgloss.Style
	Fail      lipgloss.Style
	Muted     lipgloss.Style
}

// NewStyles returns the colored styles, or plain ones when color is false
func NewStyles(color bool) Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return Styles{
			NodeType: plain, Field: plain, Attribute: plain, Literal: plain, Branch: plain,
			Header: plain, Kind: plain, OK: plain, Fail: plain, Muted: plain,
		}
	}

	return Styles{
		NodeType: lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true),
		Field: lipgloss.NewStyle().
			Foreground(ColorTextMuted),
		Attribute: lipgloss.NewStyle().
			Foreground(ColorSecondary),
		Literal: lipgloss.NewStyle().
			Foreground(ColorAccent),
		Branch: lipgloss.NewStyle().
			Foreground(ColorMuted),
		Header: lipgloss.NewStyle().
			Bold(true).
			Underline(true),
		Kind: lipgloss.NewStyle().
			Foreground(ColorSecondary),
		OK: lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true),
		Fail: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(ColorMuted),
	}
}
