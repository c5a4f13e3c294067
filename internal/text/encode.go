package text

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// ToWinAnsi converts UTF-8 text to Windows-1252, the encoding of the PDF core
// fonts. Characters outside the code page are replaced.
func ToWinAnsi(s string) string {
	enc := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())
	out, err := enc.String(s)
	if err != nil {
		return s
	}
	return out
}
