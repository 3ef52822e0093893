package helper

import (
	"strings"
	"unicode"
)

// Underscore turns a Go field name into its snake_case form, keeping acronyms
// together: CoverImageFileID -> cover_image_file_id.
func Underscore(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				// plural acronyms such as IDs stay in one word
				if nextLower && i+2 == len(runes) && runes[i+1] == 's' {
					nextLower = false
				}
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
