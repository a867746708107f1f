package model

import "fmt"

// SourceKind représente la provenance du document TTML.
type SourceKind string

const (
	SourceUnknown   SourceKind = "unknown"
	SourceFile      SourceKind = "file"
	SourceURL       SourceKind = "url"
	SourceClipboard SourceKind = "clipboard"
)

func (s SourceKind) String() string {
	switch s {
	case SourceFile:
		return "fichier"
	case SourceURL:
		return "url"
	case SourceClipboard:
		return "presse-papier"
	default:
		return "source inconnue"
	}
}

// constantes pour les formats de fichiers
type Format string

const (
	FormatJSON     Format = "json"
	FormatMARKDOWN Format = "md"
	FormatTTML     Format = "ttml"
	FormatXML      Format = "xml"
)

// du format en chaine à la constante de type Format, return une erreur si format inconnu
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json":
		return FormatJSON, nil
	case "md":
		return FormatMARKDOWN, nil
	case "ttml":
		return FormatTTML, nil
	case "xml":
		return FormatXML, nil
	default:
		return "", fmt.Errorf("format demandé inconnu: %s", s)
	}
}

// IsMarkup indique si le format est une entrée TTML acceptée.
func (f Format) IsMarkup() bool {
	return f == FormatTTML || f == FormatXML
}

func (f Format) IsTextual() bool {
	return f == FormatJSON || f == FormatMARKDOWN
}

func (f Format) Extension() string {
	return "." + string(f)
}

func (f Format) String() string {
	return string(f)
}
