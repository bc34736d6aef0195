// Package color sanity-checks hex color literals found in variable files.
package color

import (
	"fmt"

	"github.com/mazznoer/csscolorparser"
)

// Check reports whether hex is a color CSS accepts. The lexer admits a "#"
// followed by one to six hex digits, so the one, two and five digit forms
// get through it.
func Check(hex string) error {
	if _, err := csscolorparser.Parse(hex); err != nil {
		return fmt.Errorf("%s is not a valid CSS color: %w", hex, err)
	}
	return nil
}
