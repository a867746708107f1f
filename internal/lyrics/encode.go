package lyrics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/patrickprogramme/ttmlyrics/pkg/model"
)

// DefaultIndent : indentation JSON par défaut (4 espaces)
const DefaultIndent = 4

// Encode sérialise le document en un seul tableau JSON, en mémoire.
// - les caractères non ASCII restent tels quels, pas d'échappement HTML
// - indent espaces par niveau ; 0 => JSON compact
// - un document vide donne exactement "[]"
func Encode(data model.LyricData, indent int) ([]byte, error) {
	if data == nil {
		data = model.LyricData{}
	}
	if indent < 0 {
		indent = DefaultIndent
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	if err := enc.Encode(data); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	// Encoder ajoute un saut de ligne final : on le retire
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
