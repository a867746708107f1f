// Package preview produit une fiche Markdown lisible des paroles converties,
// à partir d'un template (embarqué ou posé à côté du binaire).
package preview

import (
	"fmt"
	"strings"

	"github.com/patrickprogramme/ttmlyrics/internal/lyrics"
	"github.com/patrickprogramme/ttmlyrics/pkg/model"
)

// Nom du template de fiche (basename du .tmpl)
const TemplateName = "lyrics_preview.md.tmpl"

// Data contient les données exposées au template.
type Data struct {
	Title       string
	Source      string // libellé lisible de la provenance
	Origin      string // chemin ou URL
	Lines       model.LyricData
	PhraseCount int
	Filename    string // sans extension
}

// NewData construit Data à partir d'un document converti.
func NewData(doc lyrics.Document) (Data, error) {
	name, err := doc.Filename(model.FormatMARKDOWN)
	if err != nil {
		return Data{}, fmt.Errorf("nom de fiche: %w", err)
	}
	return Data{
		Title:       doc.Title,
		Source:      doc.Source.String(),
		Origin:      doc.Origin,
		Lines:       doc.Lines,
		PhraseCount: doc.Lines.PhraseCount(),
		Filename:    strings.TrimSuffix(name, model.FormatMARKDOWN.Extension()),
	}, nil
}
