package lyrics

import (
	"fmt"

	"github.com/patrickprogramme/ttmlyrics/internal/timecode"
	"github.com/patrickprogramme/ttmlyrics/internal/ttml"
	"github.com/patrickprogramme/ttmlyrics/pkg/model"
)

// noms locaux des éléments et attributs TTML utilisés
const (
	lineTag   = "p"
	spanTag   = "span"
	beginAttr = "begin"
	endAttr   = "end"
)

// Convert analyse un document TTML brut et en extrait les lignes synchronisées.
func Convert(data []byte) (model.LyricData, error) {
	root, err := ttml.ParseDocument(data)
	if err != nil {
		return nil, err
	}
	return Extract(root)
}

// Extract parcourt tous les <p> (toute profondeur, ordre du document) et retourne une
// LyricLine par <p> qui possède un begin et au moins un <span> enfant exploitable.
// Les éléments sans attributs de timing sont ignorés silencieusement.
func Extract(root *ttml.Node) (model.LyricData, error) {
	out := model.LyricData{}
	for i, p := range root.FindAll(lineTag) {
		begin, ok := p.Attr(beginAttr)
		if !ok || begin == "" {
			continue
		}
		start, err := timecode.ParseSeconds(begin)
		if err != nil {
			return nil, fmt.Errorf("ligne %d: %w", i+1, err)
		}

		phrases, err := extractPhrases(p)
		if err != nil {
			return nil, fmt.Errorf("ligne %d: %w", i+1, err)
		}
		// une ligne sans phrase n'est jamais émise
		if len(phrases) == 0 {
			continue
		}

		out = append(out, model.LyricLine{
			Time:        timecode.FormatMMSS(start),
			Text:        phrases,
			Translation: "",
		})
	}
	return out, nil
}

// extractPhrases lit les <span> enfants directs de p ; un span sans begin ou end est sauté.
func extractPhrases(p *ttml.Node) ([]model.LyricPhrase, error) {
	var phrases []model.LyricPhrase
	for _, span := range p.ChildrenNamed(spanTag) {
		b, okB := span.Attr(beginAttr)
		e, okE := span.Attr(endAttr)
		if !okB || !okE || b == "" || e == "" {
			continue
		}
		start, err := timecode.ParseSeconds(b)
		if err != nil {
			return nil, err
		}
		end, err := timecode.ParseSeconds(e)
		if err != nil {
			return nil, err
		}
		phrases = append(phrases, model.LyricPhrase{
			Phrase:   span.Text,
			Duration: timecode.DurationCentiseconds(start, end),
		})
	}
	return phrases, nil
}
