package cmd

import (
	"fmt"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/conneroisu/compgen/internal/build"
	"github.com/conneroisu/compgen/internal/errors"
	"github.com/conneroisu/compgen/internal/logging"
	"github.com/conneroisu/compgen/internal/registry"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var buildCmd = &cobra.Command{
	Use:     "build",
	Aliases: []string{"b"},
	Short:   "Assemble every component of the application",
	Long: `Assemble every configured and discovered component for each configured
variant and write one unit per component and variant:

  <output.dir>/<variant>/<component>.<source_ext>

A failing component does not stop the others; every failure is reported and
the command exits non-zero.

Examples:
  compgen build                       # All components, all variants
  compgen build -c blog -c admin      # Only the named components
  compgen build -o dist --jobs 4      # Custom output dir and parallelism
  compgen build --dry-run             # Assemble without writing`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

var (
	buildOutput     string
	buildComponents []string
	buildJobs       int
	buildDryRun     bool
)

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Output directory (overrides output.dir)")
	buildCmd.Flags().StringSliceVarP(&buildComponents, "component", "c", nil, "Only build the named components")
	buildCmd.Flags().IntVarP(&buildJobs, "jobs", "j", runtime.NumCPU(), "Number of units assembled in parallel")
	buildCmd.Flags().BoolVar(&buildDryRun, "dry-run", false, "Assemble without writing output")
}

// unit is one component assembled for one variant.
type unit struct {
	component *registry.ComponentInfo
	variant   build.Variant
	path      string
}

func runBuild(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	components, err := selectComponents(a.components, buildComponents)
	if err != nil {
		return err
	}
	if len(components) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No components found.")
		return nil
	}

	variants := make([]build.Variant, 0, len(a.cfg.Output.Variants))
	for _, name := range a.cfg.Output.Variants {
		v, err := build.ParseVariant(name)
		if err != nil {
			return err
		}
		if !slices.Contains(variants, v) {
			variants = append(variants, v)
		}
	}

	outDir := a.cfg.Output.Dir
	if buildOutput != "" {
		outDir = buildOutput
	}

	units := make([]unit, 0, len(components)*len(variants))
	for _, c := range components {
		for _, v := range variants {
			units = append(units, unit{
				component: c,
				variant:   v,
				path:      filepath.Join(outDir, v.String(), c.Name+"."+a.cfg.Generate.SourceExt),
			})
		}
	}

	asm, err := a.assembler()
	if err != nil {
		return err
	}

	start := time.Now()
	op := logging.StartOperation(a.logger, "build")

	var g errgroup.Group
	g.SetLimit(max(buildJobs, 1))
	errs := make([]error, len(units))
	for i, u := range units {
		i, u := i, u
		g.Go(func() error {
			out, err := asm.Assemble(ctx, build.Descriptor{Root: u.component.Root, Name: u.component.Name, Variant: u.variant})
			if err != nil {
				errs[i] = err
				return nil
			}
			if !buildDryRun {
				errs[i] = writeUnit(a.fs, u.path, out)
			}
			if errs[i] == nil {
				a.logger.Debug(ctx, "Wrote unit", "component", u.component.Name, "variant", u.variant.String(), "path", u.path)
			}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}

	var buildErr error
	if failed > 0 {
		buildErr = fmt.Errorf("%d of %d units failed: %w", failed, len(units), errors.Join(errs...))
		op.EndWithError(ctx, buildErr)
	} else {
		op.End(ctx, "units", len(units))
	}

	metrics := asm.Metrics()
	snap := metrics.Snapshot()
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Assembled %d of %d units from %d components (%d templates, %d views skipped) in %s\n",
		len(units)-failed, len(units), len(components), snap.Templates, snap.SkippedViews, time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(w, "Success rate: %.1f%%\n", metrics.SuccessRate())
	if buildDryRun {
		fmt.Fprintln(w, "Dry run: nothing was written.")
	} else if failed < len(units) {
		fmt.Fprintf(w, "Output: %s\n", outDir)
	}
	return buildErr
}

// selectComponents returns all registered components, or only the named
// ones when names is not empty.
func selectComponents(reg *registry.ComponentRegistry, names []string) ([]*registry.ComponentInfo, error) {
	if len(names) == 0 {
		return reg.All(), nil
	}

	selected := make([]*registry.ComponentInfo, 0, len(names))
	for _, name := range names {
		c, ok := reg.Get(name)
		if !ok {
			return nil, errors.NewValidationError(errors.ErrCodeInvalidName, fmt.Sprintf("unknown component %q", name))
		}
		if !slices.Contains(selected, c) {
			selected = append(selected, c)
		}
	}
	slices.SortFunc(selected, func(x, y *registry.ComponentInfo) int {
		return strings.Compare(x.Name, y.Name)
	})
	return selected, nil
}
