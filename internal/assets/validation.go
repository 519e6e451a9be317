package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that a resource name is a safe relative path.
// Forward slashes separate sub-directories; "..", ".", empty segments,
// leading slashes, backslashes, colons and NUL bytes are rejected.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "\\\x00:") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	if strings.HasPrefix(name, "/") {
		return fmt.Errorf("%w: absolute path %q", ErrInvalidAssetName, name)
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
		}
	}
	return nil
}
