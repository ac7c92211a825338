package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/conneroisu/compgen/internal/build"
	"github.com/conneroisu/compgen/internal/registry"
	"github.com/conneroisu/compgen/internal/scanner"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var listCmd = &cobra.Command{
	Use:     "list [component-dir]",
	Aliases: []string{"l"},
	Short:   "List components or the resources of one component",
	Long: `Without an argument, list every configured and discovered component.
With a component directory, list the routes, views, controllers, models and
initializers that an assembly of that component would read, in emit order.

Examples:
  compgen list                    # Components in table format
  compgen list app/blog           # Resources of one component
  compgen list app/blog -f json   # Output as JSON
  compgen list -f yaml            # Output as YAML`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

var listFormat string

func init() {
	rootCmd.AddCommand(listCmd)
	addFormatFlag(listCmd, &listFormat)
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	if len(args) == 0 {
		components := a.components.All()
		if len(components) == 0 && listFormat == "table" {
			fmt.Fprintln(w, "No components found.")
			return nil
		}
		return outputComponents(w, listFormat, components)
	}

	dir := filepath.ToSlash(filepath.Clean(args[0]))
	asm, err := a.assembler(dir)
	if err != nil {
		return err
	}
	resources, err := asm.Resources(build.Descriptor{Root: dir, Name: path.Base(dir)})
	if err != nil {
		return err
	}
	if len(resources) == 0 && listFormat == "table" {
		fmt.Fprintln(w, "No resources found.")
		return nil
	}
	return outputResources(w, listFormat, resources)
}

func outputComponents(w io.Writer, format string, components []*registry.ComponentInfo) error {
	switch strings.ToLower(format) {
	case "json":
		return outputJSON(w, components)
	case "yaml":
		return outputYAML(w, components)
	default:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tROOT\tSOURCE")
		for _, c := range components {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Name, c.Root, c.Source)
		}
		return tw.Flush()
	}
}

func outputResources(w io.Writer, format string, resources []scanner.Resource) error {
	switch strings.ToLower(format) {
	case "json":
		return outputJSON(w, resourceRecords(resources))
	case "yaml":
		return outputYAML(w, resourceRecords(resources))
	default:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "KIND\tNAME\tPATH")
		for _, r := range resources {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Kind, r.LogicalName, r.Path)
		}
		return tw.Flush()
	}
}

// resourceRecord is the serialized form of a resource, with the kind
// spelled out.
type resourceRecord struct {
	Kind        string `json:"kind" yaml:"kind"`
	LogicalName string `json:"logical_name" yaml:"logical_name"`
	Path        string `json:"path" yaml:"path"`
}

func resourceRecords(resources []scanner.Resource) []resourceRecord {
	records := make([]resourceRecord, len(resources))
	for i, r := range resources {
		records[i] = resourceRecord{Kind: r.Kind.String(), LogicalName: r.LogicalName, Path: r.Path}
	}
	return records
}

func outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func outputYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
