package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/doeshing/painpoint-go/internal/app"
	"github.com/doeshing/painpoint-go/internal/infrastructure/web"
)

// NewServeCommand creates the serve command
func NewServeCommand(container *app.Container) *cobra.Command {
	var (
		addr   string
		apiKey string
		model  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the query form and JSON API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			controller, err := container.NewQueryController(apiKey, model)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = container.Config.GetListenAddr()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := web.NewServer(controller, container.Metrics.Handler(), container.Logger)
			fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", addr)
			return server.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config server.listen_addr)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key (overrides the model's auth_env_var)")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Override model name (default from config)")
	return cmd
}
