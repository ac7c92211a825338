// Package validation checks user supplied paths, names and extensions before
// they reach the file system or generated source.
package validation

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// shellChars never appear in paths or names handled by compgen.
var shellChars = []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'"}

var (
	namePattern      = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.-]*$`)
	extensionPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

// ValidatePath rejects empty paths, parent directory segments and shell
// metacharacters.
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	cleanPath := filepath.ToSlash(filepath.Clean(path))
	for _, segment := range strings.Split(cleanPath, "/") {
		if segment == ".." {
			return fmt.Errorf("path traversal detected: %s", path)
		}
	}

	for _, char := range shellChars {
		if strings.Contains(path, char) {
			return fmt.Errorf("path contains dangerous character: %s", char)
		}
	}

	return nil
}

// ValidateRelativePath is ValidatePath for paths that must stay below a
// root, such as glob patterns inside a component.
func ValidateRelativePath(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") {
		return fmt.Errorf("absolute path not allowed: %s", path)
	}
	return nil
}

// ValidateName checks a component name. Names become directory names and
// appear inside quoted literals of the generated source.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid name %q: use letters, digits, '_', '-' or '.'", name)
	}
	return nil
}

// ValidateExtension checks a file extension given with or without its dot.
func ValidateExtension(ext string) error {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return fmt.Errorf("extension cannot be empty")
	}
	if !extensionPattern.MatchString(ext) {
		return fmt.Errorf("extension %q must be alphanumeric", ext)
	}
	return nil
}

