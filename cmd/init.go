package cmd

import (
	"fmt"

	"github.com/conneroisu/compgen/internal/config"
	"github.com/conneroisu/compgen/internal/scaffolding"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration and optionally a sample component",
	Long: `Write a default .compgen.yml in the current directory.

With --scaffold, also create a sample component under the application root
from one of the built-in templates (standard, minimal, markdown).

Examples:
  compgen init                                   # Write .compgen.yml
  compgen init --scaffold blog                   # Also create app/blog
  compgen init --scaffold docs --template markdown
  compgen init --force                           # Overwrite .compgen.yml
  compgen init --list-templates                  # Show the templates`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var (
	initForce         bool
	initScaffold      string
	initTemplate      string
	initListTemplates bool
)

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing configuration file")
	initCmd.Flags().StringVar(&initScaffold, "scaffold", "", "Create a sample component with this name")
	initCmd.Flags().StringVarP(&initTemplate, "template", "t", "standard", "Template used by --scaffold")
	initCmd.Flags().BoolVar(&initListTemplates, "list-templates", false, "List the component templates and exit")
}

func runInit(cmd *cobra.Command, args []string) error {
	fs := afero.NewOsFs()
	w := cmd.OutOrStdout()
	generator := scaffolding.NewComponentGenerator(fs)

	if initListTemplates {
		for _, t := range generator.ListTemplates() {
			fmt.Fprintf(w, "%-10s %s (%d files)\n", t.Name, t.Description, t.Files)
		}
		return nil
	}

	cfg := config.Default()
	if err := config.WriteFile(fs, config.DefaultFileName, cfg, initForce); err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote %s\n", config.DefaultFileName)

	if initScaffold == "" {
		return nil
	}

	appRoot := viper.GetString("app.root")
	if appRoot == "" {
		appRoot = cfg.App.Root
	}
	files, err := generator.Generate(scaffolding.GenerateOptions{
		Name:             initScaffold,
		Template:         initTemplate,
		AppRoot:          appRoot,
		SourceExt:        cfg.Generate.SourceExt,
		ControllerSuffix: cfg.Generate.ControllerSuffix,
		TaskBaseClass:    cfg.Generate.TaskBaseClass,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Created component %s from the %s template:\n", initScaffold, initTemplate)
	for _, f := range files {
		fmt.Fprintf(w, "  %s\n", f)
	}
	return nil
}
