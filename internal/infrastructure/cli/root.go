package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/painpoint-go/internal/app"
	"github.com/doeshing/painpoint-go/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose    bool
	LogFormat  string
	ConfigPath string
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, app.Options{
		Verbose:    opts.Verbose,
		LogFormat:  opts.LogFormat,
		ConfigPath: opts.ConfigPath,
	})
	if err != nil {
		return nil, err
	}

	queryCmd, queryOpts := newQueryCommand(container)

	root := &cobra.Command{
		Use:   "painpoint [company name]",
		Short: "Find customer pain points for a company",
		Long: "painpoint runs a web-search-grounded model against a company name or URL\n" +
			"and prints a Markdown report of the pain points it finds.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			opts := *queryOpts
			opts.companyName = strings.Join(args, " ")
			return runQuery(cmd, container, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	bindQueryFlags(root, queryOpts)

	root.AddCommand(queryCmd)
	root.AddCommand(commands.NewServeCommand(container))
	root.AddCommand(commands.NewConfigCommand(container))
	root.AddCommand(commands.NewModelsCommand(container))
	root.AddCommand(commands.NewDoctorCommand(container))
	root.AddCommand(commands.NewVersionCommand())
	return root, nil
}

type queryOptions struct {
	companyName   string
	companyURL    string
	apiKey        string
	model         string
	showReasoning bool
	jsonOutput    bool
	copyResult    bool
}

func newQueryCommand(container *app.Container) (*cobra.Command, *queryOptions) {
	opts := &queryOptions{}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Search for pain points of one company",
		Example: "  painpoint query --name \"Acme Corp\"\n" +
			"  painpoint query --url https://acme.io --show-reasoning",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, container, *opts)
		},
	}

	cmd.Flags().StringVarP(&opts.companyName, "name", "n", "", "Company name to search for")
	cmd.Flags().StringVarP(&opts.companyURL, "url", "u", "", "Company URL; the search is restricted to its host")
	bindQueryFlags(cmd, opts)
	return cmd, opts
}

func bindQueryFlags(cmd *cobra.Command, opts *queryOptions) {
	cmd.Flags().StringVar(&opts.apiKey, "api-key", "", "API key (overrides the model's auth_env_var)")
	cmd.Flags().StringVarP(&opts.model, "model", "m", "", "Override model name (default from config)")
	cmd.Flags().BoolVar(&opts.showReasoning, "show-reasoning", false, "Print the model's reasoning summary when available")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the final state as JSON")
	cmd.Flags().BoolVarP(&opts.copyResult, "copy", "c", false, "Copy the report to the clipboard")
}

func runQuery(cmd *cobra.Command, container *app.Container, opts queryOptions) error {
	controller, err := container.NewQueryController(opts.apiKey, opts.model)
	if err != nil {
		return err
	}

	showReasoning := opts.showReasoning || container.Config.Preferences.ShowReasoning

	var spinner *Spinner
	if !opts.jsonOutput {
		spinner = NewSpinner(cmd.ErrOrStderr(), "Searching...")
		spinner.Start()
	}
	state, submitErr := controller.Submit(cmd.Context(), opts.companyName, opts.companyURL)
	if spinner != nil {
		spinner.Stop()
	}

	if opts.jsonOutput {
		if err := RenderJSON(cmd.OutOrStdout(), state); err != nil {
			return fmt.Errorf("encode state: %w", err)
		}
		return submitErr
	}
	if submitErr != nil {
		return submitErr
	}
	RenderResult(cmd.OutOrStdout(), state, showReasoning)
	if opts.copyResult {
		if err := NewClipboard().Copy(state.Result.Content); err != nil {
			container.Logger.Warn("copy to clipboard failed", map[string]interface{}{"error": err.Error()})
			fmt.Fprintln(cmd.ErrOrStderr(), "warning: could not copy to clipboard:", err)
		}
	}
	return nil
}
