package layout

import (
	"strings"

	"github.com/gosimple/unidecode"
)

// SanitizeFilename rewrites a filename so it is safe on FAT-formatted
// volumes: non-ASCII runes are transliterated and characters FAT forbids
// are replaced. Path separators are replaced too since the input is a
// single path component.
func SanitizeFilename(name string) string {
	// Characters not allowed in FAT: \/:*?"<>|
	replacements := map[rune]string{
		':':  " - ",
		'"':  "'",
		'|':  "-",
		'<':  "(",
		'>':  ")",
		'?':  "",
		'*':  "",
		'\\': "-",
		'/':  "-",
	}

	name = unidecode.Unidecode(name)

	result := strings.Builder{}
	for _, char := range name {
		if replacement, ok := replacements[char]; ok {
			result.WriteString(replacement)
		} else {
			result.WriteRune(char)
		}
	}

	sanitized := strings.TrimSpace(result.String())
	if sanitized == "" {
		sanitized = "track"
	}

	// FAT caps names at 255 bytes.
	if len(sanitized) > 255 {
		sanitized = sanitized[:255]
	}

	return sanitized
}

// splitExt splits a filename into stem and extension.
func splitExt(name string) (string, string) {
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		return name[:i], name[i:]
	}
	return name, ""
}
