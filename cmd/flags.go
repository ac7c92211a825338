package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/conneroisu/compgen/internal/build"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// variantValue adapts build.Variant to a pflag.Value.
type variantValue struct {
	v *build.Variant
}

var _ pflag.Value = (*variantValue)(nil)

func newVariantValue(def build.Variant, p *build.Variant) *variantValue {
	*p = def
	return &variantValue{v: p}
}

func (f *variantValue) String() string {
	if f.v == nil {
		return ""
	}
	return f.v.String()
}

func (f *variantValue) Set(s string) error {
	v, err := build.ParseVariant(s)
	if err != nil {
		return err
	}
	*f.v = v
	return nil
}

func (f *variantValue) Type() string {
	return "variant"
}

// outputFormats lists the formats accepted by --format.
var outputFormats = []string{"table", "json", "yaml"}

// addFormatFlag adds a validated --format/-f flag.
func addFormatFlag(cmd *cobra.Command, p *string) {
	cmd.Flags().StringVarP(p, "format", "f", "table", "Output format ("+strings.Join(outputFormats, "|")+")")
	AddFlagValidation(cmd, "format", func(format string) error {
		return ValidateFormatWithSuggestion(format, outputFormats)
	})
}

// AddFlagValidation adds validation for a specific flag
func AddFlagValidation(cmd *cobra.Command, flagName string, validator func(string) error) {
	flag := cmd.Flags().Lookup(flagName)
	if flag == nil {
		return
	}

	flag.Value = &validatingValue{
		Value:     flag.Value,
		validator: validator,
	}
}

type validatingValue struct {
	pflag.Value
	validator func(string) error
}

func (v *validatingValue) Set(val string) error {
	if v.validator != nil {
		if err := v.validator(val); err != nil {
			return err
		}
	}
	return v.Value.Set(val)
}

// ValidateFormatWithSuggestion rejects formats outside valid and suggests
// the closest one by prefix.
func ValidateFormatWithSuggestion(format string, valid []string) error {
	format = strings.ToLower(format)
	if slices.Contains(valid, format) {
		return nil
	}
	for _, v := range valid {
		if format != "" && strings.HasPrefix(v, format) {
			return fmt.Errorf("invalid format %q, did you mean %q?", format, v)
		}
	}
	return fmt.Errorf("invalid format %q, must be one of: %s", format, strings.Join(valid, ", "))
}
