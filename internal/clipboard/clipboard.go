package clipboard

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"
)

// ReadAll lit le contenu texte du presse-papier, normalisé (BOM retiré, fins de ligne \n).
func ReadAll() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", err
	}
	return Normalize(text), nil
}

// WriteAll écrit une chaîne de caractères dans le presse-papier.
// Retourne une erreur si l'opération échoue.
func WriteAll(text string) error {
	if text == "" {
		return errors.New("le texte à copier ne peut pas être vide")
	}
	return clipboard.WriteAll(text)
}

// Normalize retire un BOM éventuel et convertit les CRLF en LF.
func Normalize(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// LooksLikeMarkup : le texte commence-t-il par une balise ?
// Sert à écarter un presse-papier qui contient autre chose que du TTML.
func LooksLikeMarkup(s string) bool {
	s = strings.TrimSpace(Normalize(s))
	return strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">")
}
