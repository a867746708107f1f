package ttml

import (
	"fmt"
	"regexp"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// nom XML "simple" : lettres/chiffres unicode, underscore, tiret, point
const xmlNameChars = `[\p{L}\p{N}_.-]+`

// valeur d'attribut entre guillemets doubles ou simples
const attrValue = `\s*=\s*(?:"[^"]*"|'[^']*')`

var (
	// xmlnsAttrRe : xmlns="..." et xmlns:prefix="..."
	xmlnsAttrRe = regexp.MustCompile(`\sxmlns(?::[^=\s]+)?` + attrValue)

	// prefixedAttrRe : tout attribut restant dont le nom contient ":" (ttm:agent, xml:lang, itunes:key...)
	prefixedAttrRe = regexp.MustCompile(`\s` + xmlNameChars + `:` + xmlNameChars + attrValue)

	// tagPrefixRe : <ttm:agent> -> <agent>, </tt:p> -> </p>
	tagPrefixRe = regexp.MustCompile(`(</?)` + xmlNameChars + `:`)
)

// Clean retire la machinerie des namespaces pour qu'un parseur XML "à plat" puisse
// lire le document sans résolution de préfixes.
// Étapes :
// - supprime les déclarations xmlns
// - supprime les attributs préfixés restants
// - supprime le préfixe des noms de balises ouvrantes et fermantes
func Clean(markup string) string {
	markup = xmlnsAttrRe.ReplaceAllString(markup, "")
	markup = prefixedAttrRe.ReplaceAllString(markup, "")
	markup = tagPrefixRe.ReplaceAllString(markup, "${1}")
	return markup
}

// DecodeUTF8 décode l'entrée en UTF-8 et retire un éventuel BOM en tête
// (fréquent dans les fichiers enregistrés sous Windows).
func DecodeUTF8(data []byte) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return "", fmt.Errorf("décodage utf-8: %w", err)
	}
	return string(out), nil
}
