package assets

import (
	"fmt"
	"strings"
)

// maxStyleNameLen bounds style names accepted from flags and config.
const maxStyleNameLen = 64

// ValidateStyleName checks that name can only address a file directly inside
// the embedded styles directory: lowercase letters, digits, '-' and '_'.
func ValidateStyleName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > maxStyleNameLen {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidAssetName, maxStyleNameLen)
	}
	if strings.IndexFunc(name, func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' && r != '_'
	}) >= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
