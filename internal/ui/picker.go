package ui

import (
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/splashctl/internal/catalog"
)

// PickerMaxVisible is the number of options shown at once by the picker.
const PickerMaxVisible = 12

// PickerTheme returns the huh theme used by interactive prompts.
func PickerTheme() huh.Theme {
	return huh.ThemeFunc(func(isDark bool) *huh.Styles {
		t := huh.ThemeBase(isDark)

		t.Focused.Base = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(ColorPrimary)
		t.Focused.Card = t.Focused.Base
		t.Focused.Title = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
		t.Focused.Description = lipgloss.NewStyle().Foreground(ColorTextMuted).Italic(true)
		t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(ColorWarning).SetString(" *")
		t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(ColorWarning)

		t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(ColorPrimary).SetString("> ")
		t.Focused.Option = lipgloss.NewStyle().Foreground(ColorText)
		t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(ColorSecondary)

		t.Focused.FocusedButton = lipgloss.NewStyle().
			Padding(0, 2).
			MarginRight(1).
			Foreground(ColorTextInverse).
			Background(ColorPrimary)
		t.Focused.BlurredButton = lipgloss.NewStyle().
			Padding(0, 2).
			MarginRight(1).
			Foreground(ColorTextMuted)

		t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(ColorPrimary)
		t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(ColorTextMuted)
		t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(ColorPrimary)

		t.Blurred = t.Focused
		t.Blurred.Base = lipgloss.NewStyle().PaddingLeft(2)
		t.Blurred.Card = t.Blurred.Base

		t.Group.Title = lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true)
		return t
	})
}

// PickerOptions converts catalog entries to select options labelled
// "Name (id)", keyed by plugin id.
func PickerOptions(c catalog.Catalog) []huh.Option[string] {
	opts := make([]huh.Option[string], len(c))
	for i, e := range c {
		label := e.DisplayName
		if e.PluginID != e.DisplayName {
			label += " (" + e.PluginID + ")"
		}
		opts[i] = huh.NewOption(label, e.PluginID)
	}
	return opts
}

// NewPicker builds the theme selection form. The chosen plugin id is written
// to value, which also sets the initially highlighted entry.
func NewPicker(c catalog.Catalog, value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Splash screen").
				Description("Type / to filter").
				Options(PickerOptions(c)...).
				Height(min(len(c), PickerMaxVisible)+1).
				Filtering(false).
				Value(value),
		),
	).
		WithTheme(PickerTheme()).
		WithShowHelp(false)
}

// PickTheme runs the picker in the terminal and returns the chosen id.
func PickTheme(c catalog.Catalog, currentID string) (string, error) {
	value := currentID
	if err := NewPicker(c, &value).Run(); err != nil {
		return "", err
	}
	return value, nil
}
