package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	user       string
}

func (g *globalFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&g.configPath, "config", "", "Config file (default ~/.learntrail/config.yaml)")
	fs.StringVarP(&g.user, "user", "u", "", "Act as this user, overriding the config")
}

// NewRootCmd creates the top-level "learntrail" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:           "learntrail",
		Short:         "Follow courses, track progress and earn certificates",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Wire != nil {
				if err := app.Wire(app, flags.configPath); err != nil {
					return err
				}
			}
			if flags.user != "" {
				app.Config.User = flags.user
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.Close()
		},
	}
	flags.register(root.PersistentFlags())

	root.AddCommand(
		newCourseCmd(app),
		newTrailCmd(app),
		newProgressCmd(app),
		newNavCmd(app),
		newPlayCmd(app),
		newCertCmd(app),
		newUserCmd(app),
		newServeCmd(app),
	)

	return root
}
