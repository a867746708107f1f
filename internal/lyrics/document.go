package lyrics

import (
	"fmt"
	"path"
	"strings"

	"github.com/patrickprogramme/ttmlyrics/internal/fsutil"
	"github.com/patrickprogramme/ttmlyrics/pkg/model"
)

// Document représente le résultat d'une conversion : les lignes + leur provenance.
type Document struct {
	Title  string           // nom de base de la source (sans extension)
	Source model.SourceKind // fichier, url, presse-papier
	Origin string           // chemin ou URL d'origine
	Lines  model.LyricData
}

// NewDocument construit un Document à partir de données déjà prêtes.
// - pure function, pas d'I/O ni de parsing.
func NewDocument(origin string, source model.SourceKind, lines model.LyricData) Document {
	return Document{
		Title:  titleFromOrigin(origin),
		Source: source,
		Origin: origin,
		Lines:  lines,
	}
}

// titleFromOrigin : "dir/Song Name.ttml" -> "Song Name", "https://x/y/lyrics.xml?a=1" -> "lyrics"
func titleFromOrigin(origin string) string {
	o := strings.TrimSpace(origin)
	if i := strings.IndexAny(o, "?#"); i >= 0 && strings.Contains(o, "://") {
		o = o[:i]
	}
	o = strings.TrimRight(strings.ReplaceAll(o, "\\", "/"), "/")
	base := path.Base(o)
	base = strings.TrimSuffix(base, path.Ext(base))
	if base == "" || base == "." {
		return "lyrics"
	}
	return base
}

// Filename compose le nom de fichier de sortie pour ce Document, ex: "Speed.json".
func (d Document) Filename(format model.Format) (string, error) {
	if !format.IsTextual() {
		return "", fmt.Errorf("format inconnu dans Filename: %q", format)
	}
	base := fsutil.SanitizeFilename(strings.TrimSpace(d.Title))
	return base + format.Extension(), nil
}

// JSON retourne le tableau JSON complet du document.
func (d Document) JSON(indent int) ([]byte, error) {
	return Encode(d.Lines, indent)
}

// SaveJSON écrit le JSON dans dest de façon atomique : rien n'est écrit si
// l'encodage échoue, et aucun fichier partiel n'apparaît à dest.
func (d Document) SaveJSON(dest string, indent int) error {
	data, err := d.JSON(indent)
	if err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(dest, data, 0o644); err != nil {
		return fmt.Errorf("échec écriture fichier %s : %w", dest, err)
	}
	return nil
}
