package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newPlayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "play <course> [activity]",
		Short: "Work through a course one activity at a time",
		Long: `Open the activity player. Without an activity it resumes at the first
activity you have not finished.

Keys: n next, p previous, m mark complete, arrows or pgup/pgdn scroll, q quit.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("play needs a terminal; use `learntrail progress` instead")
			}
			ctx := cmd.Context()

			activityInput := ""
			if len(args) == 2 {
				activityInput = args[1]
			}
			courseUUID, activityUUID, err := resolveTarget(ctx, app, args[0], activityInput)
			if err != nil {
				return err
			}

			src, err := app.source(ctx)
			if err != nil {
				return err
			}
			svc, err := app.progressService(ctx)
			if err != nil {
				return err
			}

			if activityUUID == "" {
				view, err := svc.CourseView(ctx, courseUUID, "")
				if err != nil {
					return err
				}
				activityUUID = firstOpenActivity(view)
				if activityUUID == "" {
					return fmt.Errorf("%s has no activities yet", view.Course.Name)
				}
			}

			model := newPlayerModel(ctx, svc, src, courseUUID, activityUUID)
			p := tea.NewProgram(model,
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithContext(ctx),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running player: %w", err)
			}
			return nil
		},
	}
}
