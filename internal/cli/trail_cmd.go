package cli

import (
	"fmt"

	"github.com/alexanderramin/learntrail/internal/cli/formatter"
	"github.com/alexanderramin/learntrail/internal/progress"
	"github.com/alexanderramin/learntrail/internal/service"
	"github.com/spf13/cobra"
)

func newTrailCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trail",
		Short: "Manage the courses you are following",
	}

	cmd.AddCommand(
		newTrailShowCmd(app),
		newTrailStartCmd(app),
		newTrailCompleteCmd(app),
		newTrailQuitCmd(app),
		newTrailQuitAllCmd(app),
	)

	return cmd
}

func newTrailShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show every course on your trail with its progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := app.source(cmd.Context())
			if err != nil {
				return err
			}
			trail, err := src.Trail(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTrail(trail))
			return nil
		},
	}
}

func newTrailStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start <course>",
		Short: "Add a course to your trail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLocal("trail start"); err != nil {
				return err
			}
			ctx := cmd.Context()
			u, err := app.currentUser(ctx)
			if err != nil {
				return err
			}
			c, err := resolveCourse(ctx, app, args[0])
			if err != nil {
				return err
			}
			if _, err := app.Trails.StartCourse(ctx, u.ID, c.CourseUUID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Started %s. Open it with `learntrail play %s`.\n",
				formatter.Bold(c.Name), c.CleanUUID())
			return nil
		},
	}
}

func newTrailCompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <course> <activity>",
		Short: "Mark an activity complete",
		Long:  "Mark an activity complete. The activity is a uuid, uuid prefix, or its 1-based position in the course.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			src, err := app.source(ctx)
			if err != nil {
				return err
			}
			course, err := loadCourse(ctx, app, args[0])
			if err != nil {
				return err
			}
			activity, err := resolveActivity(course, args[1])
			if err != nil {
				return err
			}

			trail, err := src.MarkComplete(ctx, course.CourseUUID, activity.ActivityUUID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", formatter.StyleGreen.Render(formatter.GlyphDone), activity.Name)

			p := progress.CourseProgress(course, trail)
			complete := progress.IsCourseComplete(course, trail)
			certID := ""
			if complete {
				if lookup, ok := src.(service.CertificateLookup); ok {
					certID, err = lookup.CertificateFor(ctx, course.ID)
					if err != nil {
						return fmt.Errorf("looking up certificate: %w", err)
					}
				}
			}
			fmt.Fprintln(out, formatter.FormatCourseEnd(course.Name, p, complete, certID))
			return nil
		},
	}
}

func newTrailQuitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "quit <course>",
		Short: "Remove a course and its progress from your trail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			src, err := app.source(ctx)
			if err != nil {
				return err
			}
			courseUUID, err := resolveCourseUUID(ctx, app, args[0])
			if err != nil {
				return err
			}
			trail, err := src.RemoveCourse(ctx, courseUUID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Quit %s. %s left on your trail.\n",
				formatter.TruncID(courseUUID), formatter.Plural(len(trail.Runs), "course", "courses"))
			return nil
		},
	}
}

func newTrailQuitAllCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "quit-all",
		Short: "Remove every course from your trail",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLocal("trail quit-all"); err != nil {
				return err
			}
			ctx := cmd.Context()
			u, err := app.currentUser(ctx)
			if err != nil {
				return err
			}

			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to clear the trail without --yes")
				}
				confirmed := false
				if err := confirmForm("Quit every course?", "All progress on your trail is lost.", &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
			}

			last := 0
			onProgress := func(pct int) { last = pct }
			stop := func() {}
			if app.interactive() {
				spin := formatter.NewSpinner(cmd.ErrOrStderr(), "Quitting courses")
				spin.Start()
				stop = spin.Stop
				onProgress = func(pct int) {
					last = pct
					spin.SetMessage(fmt.Sprintf("Quitting courses %d%%", pct))
				}
			}

			err = app.Trails.QuitAll(ctx, u.ID, onProgress)
			stop()
			if err != nil {
				return fmt.Errorf("quitting courses (%d%% done): %w", last, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Your trail is now empty.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
