package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// namespaceRegex matches a dotted namespace: identifier segments made of
// letters, digits, underscores and generic-arity backticks.
var namespaceRegex = regexp.MustCompile("^[\\p{L}_][\\p{L}\\p{N}_`]*(\\.[\\p{L}_][\\p{L}\\p{N}_`]*)*$")

// ValidateNamespace checks a namespace given on the command line or in the
// configuration file. The empty namespace is valid and stands for the root.
//
// Namespaces end up as folder names and inside include directives, so
// anything that could escape the output directory is rejected:
//   - control characters
//   - path separators
//   - empty segments ("A..B", trailing dots)
func ValidateNamespace(ns string) error {
	if ns == "" {
		return nil
	}
	for _, r := range ns {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "namespace %q contains control characters", ns)
		}
	}
	if strings.ContainsAny(ns, "/\\") {
		return New(ErrCodeInvalidInput, "namespace %q cannot contain path separators", ns)
	}
	if !namespaceRegex.MatchString(ns) {
		return New(ErrCodeInvalidInput, "invalid namespace: %q", ns)
	}
	return nil
}

// ValidateNamespaces applies [ValidateNamespace] to every entry.
func ValidateNamespaces(list []string) error {
	for _, ns := range list {
		if err := ValidateNamespace(ns); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePath checks an input or output path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}
	return nil
}
