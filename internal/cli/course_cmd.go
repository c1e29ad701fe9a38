package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/learntrail/internal/cli/formatter"
	"github.com/alexanderramin/learntrail/internal/domain"
	"github.com/alexanderramin/learntrail/internal/progress"
	"github.com/alexanderramin/learntrail/internal/repository"
	"github.com/alexanderramin/learntrail/internal/service"
	"github.com/spf13/cobra"
)

func newCourseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "course",
		Short: "Browse and author courses",
	}

	cmd.AddCommand(
		newCourseListCmd(app),
		newCourseShowCmd(app),
		newCourseImportCmd(app),
		newCourseNewCmd(app),
		newCourseEditCmd(app),
		newCourseDeleteCmd(app),
	)

	return cmd
}

func newCourseListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List courses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLocal("course list"); err != nil {
				return err
			}
			courses, err := app.Courses.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCourseList(courses))
			return nil
		},
	}
}

func newCourseShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <course>",
		Short: "Show a course outline with your progress markers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			course, trail, err := loadCourseAndTrail(ctx, app, args[0])
			if err != nil {
				return err
			}
			groups := progress.Indicators(course, trail, "")
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCourseOutline(course, groups))
			return nil
		},
	}
}

func newCourseImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a course from a JSON snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLocal("course import"); err != nil {
				return err
			}
			c, err := app.Courses.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s %s (%s, %s)\n",
				formatter.Bold(c.Name), formatter.TruncID(c.CourseUUID),
				formatter.Plural(len(c.Chapters), "chapter", "chapters"),
				formatter.Plural(c.ActivityCount(), "activity", "activities"))
			return nil
		},
	}
}

func newCourseNewCmd(app *App) *cobra.Command {
	var draft courseDraft
	var outlineFile string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Author a course with a wizard, or from flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLocal("course new"); err != nil {
				return err
			}
			if outlineFile != "" {
				data, err := os.ReadFile(outlineFile)
				if err != nil {
					return fmt.Errorf("reading outline: %w", err)
				}
				draft.Outline = string(data)
			}

			if draft.Name == "" || draft.Outline == "" {
				if !app.interactive() {
					return fmt.Errorf("--name and --outline are required when not running in a terminal")
				}
				if err := newCourseForm(&draft).Run(); err != nil {
					return err
				}
			}

			schema, err := draft.schema()
			if err != nil {
				return err
			}
			c, err := app.Courses.Import(cmd.Context(), schema)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s\n", formatter.Bold(c.Name), formatter.TruncID(c.CourseUUID))
			return nil
		},
	}

	cmd.Flags().StringVar(&draft.Name, "name", "", "Course name")
	cmd.Flags().StringVar(&draft.Description, "description", "", "Course description")
	cmd.Flags().StringVar(&draft.Outline, "outline", "", "Outline text (chapters, then \"- Activity [type]\" lines)")
	cmd.Flags().StringVar(&outlineFile, "outline-file", "", "Read the outline from a file")
	cmd.MarkFlagsMutuallyExclusive("outline", "outline-file")

	return cmd
}

func newCourseEditCmd(app *App) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "edit <course>",
		Short: "Rename a course or change its description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLocal("course edit"); err != nil {
				return err
			}
			if name == "" && description == "" {
				return fmt.Errorf("nothing to change; pass --name or --description")
			}
			ctx := cmd.Context()
			c, err := resolveCourse(ctx, app, args[0])
			if err != nil {
				return err
			}
			updated, err := app.Courses.Update(ctx, c.CourseUUID, name, description)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", formatter.Bold(updated.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New course name")
	cmd.Flags().StringVar(&description, "description", "", "New course description")
	return cmd
}

func newCourseDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <course>",
		Short: "Delete a course with its runs and certification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLocal("course delete"); err != nil {
				return err
			}
			ctx := cmd.Context()
			c, err := resolveCourse(ctx, app, args[0])
			if err != nil {
				return err
			}

			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to delete %q without --yes", c.Name)
				}
				confirmed := false
				form := confirmForm("Delete "+c.Name+"?", "Every learner's progress on it is removed too.", &confirmed)
				if err := form.Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
			}

			if err := app.Courses.Delete(ctx, c.CourseUUID); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return fmt.Errorf("course %q was already deleted", c.Name)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", c.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// loadCourseAndTrail fetches a course and, when a learner is known, their
// trail. Without a learner the trail is nil and every activity is pending.
func loadCourseAndTrail(ctx context.Context, app *App, input string) (*domain.Course, *domain.Trail, error) {
	course, err := loadCourse(ctx, app, input)
	if err != nil {
		return nil, nil, err
	}

	var src service.SnapshotSource
	if app.Config.Remote() {
		if src, err = app.source(ctx); err != nil {
			return nil, nil, err
		}
	} else {
		u, err := app.currentUser(ctx)
		if err != nil {
			return course, nil, nil
		}
		src = &service.LocalSource{UserID: u.ID, Courses: app.Courses, Trails: app.Trails}
	}
	trail, err := src.Trail(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading trail: %w", err)
	}
	return course, trail, nil
}
