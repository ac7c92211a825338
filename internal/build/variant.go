package build

import (
	"fmt"
	"strings"

	"github.com/conneroisu/compgen/internal/errors"
)

// Variant selects which resource kinds an assembly emits.
type Variant int

const (
	// VariantClient emits routes and views.
	VariantClient Variant = iota
	// VariantServer emits routes, views, controllers, models, tasks and
	// initializers.
	VariantServer
)

// String returns "client" or "server".
func (v Variant) String() string {
	switch v {
	case VariantClient:
		return "client"
	case VariantServer:
		return "server"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// ParseVariant parses a variant name, case-insensitively.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "client":
		return VariantClient, nil
	case "server":
		return VariantServer, nil
	default:
		return VariantClient, errors.NewValidationError(errors.ErrCodeInvalidVariant,
			fmt.Sprintf("unknown variant %q (expected client or server)", s))
	}
}

// Descriptor identifies one assembly run.
type Descriptor struct {
	// Root is the component directory.
	Root string
	// Name is the component's logical name, used in template keys and
	// initializer load paths.
	Name string
	// Variant selects the emitted resource kinds.
	Variant Variant
}

// Validate checks that the descriptor can be assembled.
func (d Descriptor) Validate() error {
	if strings.TrimSpace(d.Root) == "" {
		return errors.NewValidationError(errors.ErrCodeInvalidName, "component root is empty")
	}
	if d.Name == "" || strings.ContainsAny(d.Name, " \t\n'\"\\") {
		return errors.NewValidationError(errors.ErrCodeInvalidName,
			fmt.Sprintf("invalid component name %q", d.Name))
	}
	if d.Variant != VariantClient && d.Variant != VariantServer {
		return errors.NewValidationError(errors.ErrCodeInvalidVariant, "unknown variant "+d.Variant.String())
	}
	return nil
}
