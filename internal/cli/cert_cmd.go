package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/learntrail/internal/cli/formatter"
	"github.com/alexanderramin/learntrail/internal/domain"
	"github.com/alexanderramin/learntrail/internal/service"
	"github.com/spf13/cobra"
)

func newCertCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cert",
		Aliases: []string{"certificate"},
		Short:   "Configure and verify course certificates",
	}

	cmd.AddCommand(
		newCertCreateCmd(app),
		newCertListCmd(app),
		newCertUpdateCmd(app),
		newCertDeleteCmd(app),
		newCertClaimCmd(app),
		newCertVerifyCmd(app),
		newCertMineCmd(app),
	)

	return cmd
}

func newCertCreateCmd(app *App) *cobra.Command {
	var cfg domain.CertificationConfig

	cmd := &cobra.Command{
		Use:   "create <course>",
		Short: "Configure the certificate awarded for finishing a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLocal("cert create"); err != nil {
				return err
			}
			ctx := cmd.Context()
			c, err := resolveCourse(ctx, app, args[0])
			if err != nil {
				return err
			}
			if strings.TrimSpace(cfg.Name) == "" {
				cfg.Name = c.Name
			}
			cert, err := app.Certs.Create(ctx, c.CourseUUID, cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created certificate %s for %s\n",
				formatter.Bold(cert.Config.Name), c.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.Name, "name", "", "Certificate name (defaults to the course name)")
	cmd.Flags().StringVar(&cfg.Description, "description", "", "Certificate description")
	cmd.Flags().StringVar(&cfg.Type, "type", "", "Certificate type, for example completion")
	return cmd
}

func newCertListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <course>",
		Short: "List the certificate configured for a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLocal("cert list"); err != nil {
				return err
			}
			ctx := cmd.Context()
			c, err := resolveCourse(ctx, app, args[0])
			if err != nil {
				return err
			}
			certs, err := app.Certs.ListByCourse(ctx, c.CourseUUID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCertifications(certs))
			return nil
		},
	}
}

func newCertUpdateCmd(app *App) *cobra.Command {
	var cfg domain.CertificationConfig

	cmd := &cobra.Command{
		Use:   "update <course>",
		Short: "Change the certificate of a course; omitted fields keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLocal("cert update"); err != nil {
				return err
			}
			ctx := cmd.Context()
			c, cert, err := courseCertification(ctx, app, args[0])
			if err != nil {
				return err
			}
			cert, err = app.Certs.Update(ctx, cert.CertificationUUID, cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated certificate %s for %s\n", formatter.Bold(cert.Config.Name), c.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.Name, "name", "", "Certificate name")
	cmd.Flags().StringVar(&cfg.Description, "description", "", "Certificate description")
	cmd.Flags().StringVar(&cfg.Type, "type", "", "Certificate type")
	return cmd
}

func newCertDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <course>",
		Short: "Remove the certificate of a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLocal("cert delete"); err != nil {
				return err
			}
			ctx := cmd.Context()
			c, cert, err := courseCertification(ctx, app, args[0])
			if err != nil {
				return err
			}
			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to delete the certificate of %q without --yes", c.Name)
				}
				confirmed := false
				if err := confirmForm("Delete the certificate of "+c.Name+"?", "Issued certificates are removed too.", &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
			}
			if err := app.Certs.Delete(ctx, cert.CertificationUUID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted certificate %s\n", cert.Config.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newCertClaimCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "claim <course>",
		Short: "Issue your certificate for a course you already finished",
		Long: `Issue your certificate for a finished course. Certificates are issued when the
last activity is marked complete; claim covers certificates configured afterwards.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLocal("cert claim"); err != nil {
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
			cu, err := app.Certs.IssueIfComplete(ctx, u.ID, c.CourseUUID)
			switch {
			case errors.Is(err, service.ErrCourseIncomplete):
				return fmt.Errorf("finish %s first: %w", c.Name, err)
			case errors.Is(err, service.ErrNoCertification):
				return fmt.Errorf("%s has no certificate configured", c.Name)
			case err != nil:
				return err
			}
			ic, err := app.Certs.Verify(ctx, cu.UserCertificationUUID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatIssuedCertificate(ic))
			return nil
		},
	}
}

// courseCertification resolves a local course and its certification.
func courseCertification(ctx context.Context, app *App, input string) (*domain.Course, *domain.Certification, error) {
	c, err := resolveCourse(ctx, app, input)
	if err != nil {
		return nil, nil, err
	}
	certs, err := app.Certs.ListByCourse(ctx, c.CourseUUID)
	if err != nil {
		return nil, nil, err
	}
	if len(certs) == 0 {
		return nil, nil, fmt.Errorf("%s has no certificate configured", c.Name)
	}
	return c, certs[0], nil
}

func newCertVerifyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <certificate-id>",
		Short: "Look up an issued certificate by its id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := strings.TrimSpace(args[0])

			var (
				ic  *domain.IssuedCertificate
				err error
			)
			if app.Config.Remote() {
				ic, err = app.remoteClient().Certificate(ctx, id)
			} else {
				ic, err = app.Certs.Verify(ctx, id)
			}
			if err != nil {
				return fmt.Errorf("verifying %s: %w", id, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatIssuedCertificate(ic))
			return nil
		},
	}
}

func newCertMineCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List the certificates you have earned",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLocal("cert mine"); err != nil {
				return err
			}
			ctx := cmd.Context()
			u, err := app.currentUser(ctx)
			if err != nil {
				return err
			}
			list, err := app.Certs.ListForUser(ctx, u.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatIssuedList(list))
			return nil
		},
	}
}
