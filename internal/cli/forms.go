package cli

import (
	"errors"
	"strings"

	"github.com/alexanderramin/learntrail/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// huhTheme returns a huh theme using the Gruvbox palette.
func huhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

// courseDraft is what the `course new` wizard collects.
type courseDraft struct {
	Name        string
	Description string
	Outline     string
}

func newCourseForm(d *courseDraft) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Course name").
				Value(&d.Name).
				Validate(required("name")),
			huh.NewText().
				Title("Description").
				Placeholder("optional").
				Value(&d.Description),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Outline").
				Description("One chapter per line; activities below it as \"- Name [type]\".\nTypes: video, document, dynamic, assignment.").
				Placeholder("Intro\n- Welcome [video]\n- Setup [document]").
				Lines(10).
				Value(&d.Outline).
				Validate(func(s string) error {
					_, err := parseOutline(s)
					return err
				}),
		),
	).WithTheme(huhTheme()).WithShowHelp(false)
}

// confirmForm asks a yes/no question. The answer defaults to no.
func confirmForm(title, description string, answer *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(answer),
		),
	).WithTheme(huhTheme()).WithShowHelp(false)
}
