package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var handlersCmd = &cobra.Command{
	Use:   "handlers",
	Short: "List the template extensions that have a handler",
	Long: `List every view file extension that has a template handler. Views with any
other extension are skipped during assembly.

Extra extensions are configured under handlers: in .compgen.yml, mapping an
extension to identity or markdown.`,
	Args: cobra.NoArgs,
	RunE: runHandlers,
}

var handlersFormat string

func init() {
	rootCmd.AddCommand(handlersCmd)
	addFormatFlag(handlersCmd, &handlersFormat)
}

// handlerRecord describes one registered extension.
type handlerRecord struct {
	Extension string `json:"extension" yaml:"extension"`
	Handler   string `json:"handler" yaml:"handler"`
	Source    string `json:"source" yaml:"source"`
}

func runHandlers(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	configured := make(map[string]string, len(a.cfg.Handlers))
	for tag, name := range a.cfg.Handlers {
		configured[strings.TrimPrefix(strings.ToLower(tag), ".")] = name
	}

	var records []handlerRecord
	for _, ext := range a.handlerRegistry().KnownExtensions() {
		record := handlerRecord{Extension: ext, Handler: "identity", Source: "default"}
		if name, ok := configured[ext]; ok {
			record.Handler = canonicalHandlerName(name)
			record.Source = "config"
		}
		records = append(records, record)
	}

	return outputHandlers(cmd.OutOrStdout(), handlersFormat, records)
}

func canonicalHandlerName(name string) string {
	switch name {
	case "markdown", "md":
		return "markdown"
	default:
		return "identity"
	}
}

func outputHandlers(w io.Writer, format string, records []handlerRecord) error {
	switch strings.ToLower(format) {
	case "json":
		return outputJSON(w, records)
	case "yaml":
		return outputYAML(w, records)
	default:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "EXTENSION\tHANDLER\tSOURCE")
		for _, r := range records {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Extension, r.Handler, r.Source)
		}
		return tw.Flush()
	}
}
