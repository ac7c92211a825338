package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/conneroisu/compgen/internal/build"
	"github.com/conneroisu/compgen/internal/errors"
	"github.com/spf13/cobra"
)

var assembleCmd = &cobra.Command{
	Use:     "assemble <component-dir>",
	Aliases: []string{"a"},
	Short:   "Assemble one component into a generated source unit",
	Long: `Assemble one component directory into a single generated source unit.

The client variant registers the routes and view templates. The server
variant additionally includes controllers, models, task declarations and
initializer requires.

Examples:
  compgen assemble app/blog                     # Client unit on stdout
  compgen assemble app/blog --variant server    # Server unit on stdout
  compgen assemble app/blog -n blog -o blog.rb  # Write to a file`,
	Args: cobra.ExactArgs(1),
	RunE: runAssemble,
}

var (
	assembleName    string
	assembleOutput  string
	assembleVariant build.Variant
)

func init() {
	rootCmd.AddCommand(assembleCmd)

	assembleCmd.Flags().StringVarP(&assembleName, "name", "n", "", "Component name (default is the directory name)")
	assembleCmd.Flags().StringVarP(&assembleOutput, "output", "o", "", "Output file (default is stdout)")
	assembleCmd.Flags().Var(newVariantValue(build.VariantClient, &assembleVariant), "variant", "Variant to assemble (client, server)")
}

func runAssemble(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	dir := filepath.ToSlash(filepath.Clean(args[0]))
	name := assembleName
	if name == "" {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return errors.WrapIO(err, errors.ErrCodeReadFailed, "failed to resolve component directory", args[0])
		}
		name = filepath.Base(abs)
	}

	asm, err := a.assembler(dir)
	if err != nil {
		return err
	}

	out, err := asm.Assemble(cmd.Context(), build.Descriptor{Root: dir, Name: name, Variant: assembleVariant})
	if err != nil {
		return err
	}

	if assembleOutput == "" || assembleOutput == "-" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	}
	return writeUnit(a.fs, assembleOutput, out)
}
