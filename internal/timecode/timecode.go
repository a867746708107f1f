// Package timecode convertit les horodatages TTML entre leurs trois représentations :
// texte ("S.mmm", "M:SS.mmm"), secondes flottantes, et durées en centièmes de seconde.
package timecode

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/patrickprogramme/ttmlyrics/pkg/model"
)

// FormatError signale un horodatage dont le contenu numérique est invalide.
type FormatError struct {
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("horodatage invalide %q: %v", e.Value, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// ParseSeconds convertit "9.408", "1:00.628" (ou "1:02:03.5") en secondes.
// Une chaîne vide retourne 0 sans erreur.
func ParseSeconds(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if !strings.Contains(s, ":") {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, &FormatError{Value: s, Err: err}
		}
		return v, nil
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, &FormatError{Value: s, Err: fmt.Errorf("trop de composants (%d)", len(parts))}
	}

	// la dernière partie porte les secondes fractionnaires, les autres sont entières
	sec, err := strconv.ParseFloat(strings.TrimSpace(parts[len(parts)-1]), 64)
	if err != nil {
		return 0, &FormatError{Value: s, Err: err}
	}
	var whole int64
	for _, p := range parts[:len(parts)-1] {
		n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return 0, &FormatError{Value: s, Err: err}
		}
		whole = whole*60 + n
	}
	return float64(whole*60) + sec, nil
}

// FormatMMSS formate des secondes en "MM:SS.ss" (minutes non bornées : 61:00.00).
// L'arrondi se fait à la milliseconde (au pair le plus proche en cas d'égalité).
func FormatMMSS(seconds float64) string {
	totalMs := int64(math.RoundToEven(seconds * 1000))
	minutes := floorDiv(totalMs, 60000)
	rest := totalMs - minutes*60000
	return fmt.Sprintf("%02d:%05.2f", minutes, float64(rest)/1000)
}

// DurationCentiseconds retourne (end - start) * 100 arrondi à une décimale.
// Aucune vérification end >= start : une durée négative est propagée telle quelle.
func DurationCentiseconds(start, end float64) model.Centiseconds {
	return model.Centiseconds(Round1((end - start) * 100))
}

// Round1 arrondit à une décimale sur la valeur binaire exacte (égalité -> pair).
func Round1(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// floorDiv : division entière arrondie vers -inf (comme // en arithmétique usuelle).
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
