package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/doeshing/painpoint-go/internal/app"
	configapp "github.com/doeshing/painpoint-go/internal/application/config"
	"github.com/doeshing/painpoint-go/internal/domain"
)

// NewModelsCommand creates the models command with all subcommands
func NewModelsCommand(container *app.Container) *cobra.Command {
	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "Manage model endpoint definitions",
	}

	modelsCmd.AddCommand(
		newModelsListCommand(container),
		newModelsUseCommand(container),
		newModelsAddCommand(container),
		newModelsRemoveCommand(container),
	)

	return modelsCmd
}

func newModelsListCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured models",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listModels(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

func newModelsUseCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Set default model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfig(cmd.Context(), container, func(cfg *domain.Config) error {
				return cfg.SetDefaultModel(args[0])
			})
		},
	}
}

func newModelsAddCommand(container *app.Container) *cobra.Command {
	var model domain.ModelDefinition

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new model definition",
		RunE: func(cmd *cobra.Command, args []string) error {
			if model.Name == "" || model.Endpoint == "" {
				return errors.New("--name and --endpoint are required")
			}
			if model.ModelID == "" {
				model.ModelID = model.Name
			}
			return updateConfig(cmd.Context(), container, func(cfg *domain.Config) error {
				return cfg.AddModel(model)
			})
		},
	}

	cmd.Flags().StringVar(&model.Name, "name", "", "Model name (identifier)")
	cmd.Flags().StringVar(&model.Endpoint, "endpoint", "", "Responses endpoint URL")
	cmd.Flags().StringVar(&model.ModelID, "model-id", "", "Model identifier sent with each request (default: name)")
	cmd.Flags().StringVar(&model.AuthEnvVar, "auth-env", domain.DefaultAuthEnvVar, "Environment variable containing the API key")
	cmd.Flags().StringVar(&model.APIFormat.AuthHeaderName, "auth-header", "", "Authentication header name (default Authorization)")
	cmd.Flags().StringVar(&model.APIFormat.AuthHeaderPrefix, "auth-prefix", "", "Authentication header value prefix (default \"Bearer \")")
	return cmd
}

func newModelsRemoveCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove model definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfig(cmd.Context(), container, func(cfg *domain.Config) error {
				return cfg.RemoveModel(args[0])
			})
		},
	}
}

func listModels(ctx context.Context, out io.Writer, container *app.Container) error {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tMODEL ID\tENDPOINT\tKEY ENV\tDEFAULT")
	for _, model := range cfg.Models {
		defaultMarker := ""
		if cfg.Preferences.DefaultModel == model.Name {
			defaultMarker = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			model.Name, model.ModelID, model.Endpoint, model.CredentialEnvVar(), defaultMarker)
	}
	return tw.Flush()
}

// updateConfig loads, mutates, validates and saves the configuration.
func updateConfig(ctx context.Context, container *app.Container, mutate func(*domain.Config) error) error {
	if container.ConfigLoader == nil {
		return errors.New(ErrConfigLoaderUnavailable)
	}
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := mutate(&cfg); err != nil {
		return err
	}
	if err := configapp.Validate(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if err := container.ConfigLoader.Save(cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	return nil
}
