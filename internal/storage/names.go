package storage

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

const maxNameLength = 255

// CleanName normalizes a client-supplied file name and rejects anything
// that is not a single path element.
func CleanName(name string) (string, error) {
	if strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("%w: contains NUL byte", ErrInvalidName)
	}

	cleaned := path.Clean(strings.ReplaceAll(name, `\`, "/"))
	switch {
	case cleaned == "." || cleaned == "/" || name == "":
		return "", fmt.Errorf("%w: empty name", ErrInvalidName)
	case cleaned == ".." || strings.HasPrefix(cleaned, "../"):
		return "", fmt.Errorf("%w: %q escapes the root directory", ErrInvalidName, name)
	case path.IsAbs(cleaned) || filepath.IsAbs(cleaned) || filepath.VolumeName(cleaned) != "":
		return "", fmt.Errorf("%w: %q is an absolute path", ErrInvalidName, name)
	case strings.Contains(cleaned, "/"):
		return "", fmt.Errorf("%w: %q contains a directory", ErrInvalidName, name)
	case len(cleaned) > maxNameLength:
		return "", fmt.Errorf("%w: longer than %d bytes", ErrInvalidName, maxNameLength)
	}

	return cleaned, nil
}

// ResolvePath returns the location of name under root. The result is
// guaranteed to be a direct child of root.
func ResolvePath(root, name string) (string, string, error) {
	cleaned, err := CleanName(name)
	if err != nil {
		return "", "", err
	}

	root = filepath.Clean(root)
	target := filepath.Join(root, cleaned)

	rel, err := filepath.Rel(root, target)
	if err != nil || rel != cleaned {
		return "", "", fmt.Errorf("%w: %q resolves outside the root directory", ErrInvalidName, name)
	}

	return cleaned, target, nil
}
