package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/learntrail/internal/cli/formatter"
	"github.com/alexanderramin/learntrail/internal/progress"
	"github.com/alexanderramin/learntrail/internal/service"
	"github.com/spf13/cobra"
)

func newProgressCmd(app *App) *cobra.Command {
	var current string

	cmd := &cobra.Command{
		Use:   "progress <course>",
		Short: "Show your progress through a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			courseUUID, activityUUID, err := resolveTarget(ctx, app, args[0], current)
			if err != nil {
				return err
			}
			svc, err := app.progressService(ctx)
			if err != nil {
				return err
			}
			view, err := svc.CourseView(ctx, courseUUID, activityUUID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCourseProgress(view))
			return nil
		},
	}

	cmd.Flags().StringVar(&current, "current", "", "Activity you are on (uuid, prefix or position)")
	return cmd
}

func newNavCmd(app *App) *cobra.Command {
	var next, prev bool

	cmd := &cobra.Command{
		Use:   "nav <course> <activity>",
		Short: "Print the route of the activity after (or before) the given one",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			courseUUID, activityUUID, err := resolveTarget(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}
			svc, err := app.progressService(ctx)
			if err != nil {
				return err
			}

			dir := service.Next
			if prev {
				dir = service.Prev
			}
			out := cmd.OutOrStdout()
			router := progress.RouterFunc(func(_ context.Context, url string) error {
				_, err := fmt.Fprintln(out, url)
				return err
			})

			target, err := svc.Navigate(ctx, courseUUID, activityUUID, dir, router)
			if err != nil {
				return err
			}
			if target == nil {
				if dir == service.Prev {
					fmt.Fprintln(out, "No previous activity")
				} else {
					fmt.Fprintln(out, "No next activity")
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&next, "next", false, "Go to the next activity (default)")
	cmd.Flags().BoolVar(&prev, "prev", false, "Go to the previous activity")
	cmd.MarkFlagsMutuallyExclusive("next", "prev")
	return cmd
}

// resolveTarget turns user input into full course and activity uuids. An
// empty activity input stays empty.
func resolveTarget(ctx context.Context, app *App, courseInput, activityInput string) (string, string, error) {
	course, err := loadCourse(ctx, app, courseInput)
	if err != nil {
		return "", "", err
	}
	if activityInput == "" {
		return course.CourseUUID, "", nil
	}
	a, err := resolveActivity(course, activityInput)
	if err != nil {
		return "", "", err
	}
	return course.CourseUUID, a.ActivityUUID, nil
}
