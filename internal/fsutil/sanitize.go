package fsutil

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// longueur max du nom (en octets), coupée sur une frontière de rune
const maxNameBytes = 200

// invalidFileRunes définit les caractères interdits dans les noms de fichiers
// \x00-\x1F sont les caractères de contrôle
var invalidFileRunes = regexp.MustCompile(`[<>"/\\|?*\x00-\x1F]`)

var multiSpace = regexp.MustCompile(`\s+`)

// SanitizeFilename nettoie une chaîne pour en faire un nom de fichier valide
// (titres de chansons japonais, coréens... conservés tels quels).
// Étapes :
// - Remplace ":" par "-"
// - Remplace les autres caractères interdits par un espace
// - Réduit les espaces, supprime les points terminaux
// - Limite la longueur sans couper une rune
// - "untitled" si le résultat est vide
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, ":", "-")
	clean := invalidFileRunes.ReplaceAllString(name, " ")
	clean = strings.TrimSpace(clean)
	clean = multiSpace.ReplaceAllString(clean, " ")
	clean = strings.TrimRight(clean, ".")

	if clean == "" {
		return "untitled"
	}

	if len(clean) > maxNameBytes {
		cut := maxNameBytes
		for cut > 0 && !utf8.RuneStart(clean[cut]) {
			cut--
		}
		clean = strings.TrimSpace(clean[:cut])
	}

	return CapitalizeFirst(clean)
}

// CapitalizeFirst met en majuscule le premier caractère (rune) de s.
func CapitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
