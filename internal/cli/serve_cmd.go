package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/learntrail/internal/api"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the learning API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLocal("serve"); err != nil {
				return err
			}
			if addr == "" {
				addr = app.Config.Server.Addr
			}

			router := api.NewRouter(api.Services{
				Users:   app.Users,
				Courses: app.Courses,
				Trails:  app.Trails,
				Certs:   app.Certs,
			}, api.Options{
				AllowedOrigins: app.Config.Server.AllowedOrigins,
				RouteBase:      app.Config.Route.Base,
				Logger:         app.logger().Named("api"),
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return api.Serve(ctx, addr, router, app.logger())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from server.addr)")
	return cmd
}
