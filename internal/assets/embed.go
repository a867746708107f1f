package assets

import "embed"

//go:embed ttmlyrics.example.yaml
//go:embed templates/*tmpl
var Embedded embed.FS

// Nom de l'asset de config par défaut (chemin DANS Embedded)
const DefaultConfigAsset = "ttmlyrics.example.yaml"

// TemplatesDir : préfixe des templates dans Embedded
const TemplatesDir = "templates"

// DefaultTemplatePaths : liste ordonnée des templates "par défaut" embarqués.
var DefaultTemplatePaths = []string{
	"templates/lyrics_preview.md.tmpl",
}

// TemplateByName donne un accès par clé (map).
var TemplateByName = map[string]string{
	"lyrics_preview": "templates/lyrics_preview.md.tmpl",
}
