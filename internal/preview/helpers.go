package preview

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/patrickprogramme/ttmlyrics/pkg/model"
)

// buildCalloutBase construit l'en-tête du callout.
// kind -> en majuscule dans [!KIND], title optionnel sur la même ligne.
func buildCalloutBase(kind, title string) string {
	k := strings.ToUpper(strings.TrimSpace(kind))
	if k == "" {
		k = "NOTE"
	}
	var cleanKind []rune
	for _, r := range k {
		if unicode.IsLetter(r) || r == '-' || r == '_' {
			cleanKind = append(cleanKind, r)
		}
	}
	header := fmt.Sprintf("> [!%s]", string(cleanKind))
	if t := strings.TrimSpace(title); t != "" {
		header = header + " " + t
	}
	return header + "\n"
}

// quoteBlockPure : préfixe chaque ligne par "> " pour un blockquote Markdown.
func quoteBlockPure(s string) string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = "> " + strings.TrimRight(lines[i], " \t")
	}
	return strings.Join(lines, "\n")
}

// warningFunc : usage dans template:
//   - {{ warning .Message }}
//   - {{ warning "Titre court" .Message }}
func warningFunc(args ...interface{}) string {
	var title, content string
	if len(args) == 1 {
		content = fmt.Sprint(args[0])
	} else if len(args) >= 2 {
		title = fmt.Sprint(args[0])
		content = fmt.Sprint(args[1])
	}
	body := quoteBlockPure(content)
	if body == "" {
		body = ">"
	}
	return buildCalloutBase("warning", title) + body + "\n"
}

// escapeCell rend un texte sûr dans une cellule de tableau Markdown.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r", "")
	return strings.ReplaceAll(s, "\n", " ")
}

// phrasesPure : "Hel·lo ·world" façon karaoké, chaque phrase séparée par "·".
// Les espaces d'origine sont conservés.
func phrasesPure(ps []model.LyricPhrase) string {
	parts := make([]string, 0, len(ps))
	for _, p := range ps {
		parts = append(parts, escapeCell(p.Phrase))
	}
	return strings.Join(parts, "·")
}

func durationSumPure(ps []model.LyricPhrase) string {
	return model.LyricLine{Text: ps}.TotalDuration().String()
}

func inc(i int) int { return i + 1 }
