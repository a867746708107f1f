package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Centiseconds représente une durée en centièmes de seconde (1/100 s),
// avec une décimale de précision.
type Centiseconds float64

// MarshalJSON écrit toujours une décimale : 100 -> 100.0, 45.6 -> 45.6.
// L'éditeur de paroles s'attend à ce format.
func (c Centiseconds) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(c), 'f', 1, 64)), nil
}

func (c Centiseconds) String() string {
	return strconv.FormatFloat(float64(c), 'f', 1, 64)
}

// LyricPhrase est un mot (ou un morceau de phrase) synchronisé à l'intérieur d'une ligne.
// L'ordre des champs est l'ordre d'écriture JSON.
type LyricPhrase struct {
	Phrase   string       `json:"phrase"`
	Duration Centiseconds `json:"duration"`
}

// LyricLine est une ligne de paroles : heure de début (MM:SS.ss), phrases, traduction.
// Translation est toujours vide à la conversion, elle est remplie plus tard dans l'éditeur.
type LyricLine struct {
	Time        string        `json:"time"`
	Text        []LyricPhrase `json:"text"`
	Translation string        `json:"translation"`
}

// LyricData est le document complet, dans l'ordre du fichier source.
type LyricData []LyricLine

// Joined retourne le texte de la ligne (phrases collées telles quelles).
func (l LyricLine) Joined() string {
	var b strings.Builder
	for _, p := range l.Text {
		b.WriteString(p.Phrase)
	}
	return b.String()
}

// TotalDuration additionne la durée de toutes les phrases de la ligne.
func (l LyricLine) TotalDuration() Centiseconds {
	var sum float64
	for _, p := range l.Text {
		sum += float64(p.Duration)
	}
	return Centiseconds(sum)
}

func (l LyricLine) String() string {
	return fmt.Sprintf("LyricLine(time=%s, phrases=%d)", l.Time, len(l.Text))
}

// PhraseCount retourne le nombre total de phrases du document.
func (d LyricData) PhraseCount() int {
	n := 0
	for _, l := range d {
		n += len(l.Text)
	}
	return n
}

func (d LyricData) String() string {
	return fmt.Sprintf("LyricData[lines=%d, phrases=%d]", len(d), d.PhraseCount())
}

// Pretty retourne une fiche multi-lignes simple.
func (d LyricData) Pretty() string {
	first, last := "<aucune>", "<aucune>"
	if len(d) > 0 {
		first = d[0].Time
		last = d[len(d)-1].Time
	}
	return fmt.Sprintf(
		"Lyrics:\n"+
			"  Lignes     : %d\n"+
			"  Phrases    : %d\n"+
			"  Première   : %s\n"+
			"  Dernière   : %s\n",
		len(d),
		d.PhraseCount(),
		first,
		last,
	)
}
