package ttml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// nom de la racine synthétique ajoutée autour du document
const syntheticRoot = "root"

// ParseError : les deux tentatives d'analyse (avec et sans racine synthétique) ont échoué.
type ParseError struct {
	Wrapped   error // erreur avec la racine synthétique
	Unwrapped error // erreur sur le texte brut
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("analyse XML impossible. avec racine: %v ; texte brut: %v", e.Wrapped, e.Unwrapped)
}

func (e *ParseError) Unwrap() []error {
	return []error{e.Wrapped, e.Unwrapped}
}

// ParseDocument enchaîne décodage UTF-8, nettoyage des namespaces et analyse.
func ParseDocument(data []byte) (*Node, error) {
	text, err := DecodeUTF8(data)
	if err != nil {
		return nil, err
	}
	return Parse(Clean(text))
}

// Parse analyse un texte déjà nettoyé par Clean.
// Le texte est d'abord enveloppé dans une racine synthétique (tolère plusieurs racines) ;
// en cas d'échec on réessaie sur le texte brut avant de remonter une *ParseError.
func Parse(cleaned string) (*Node, error) {
	root, wrappedErr := parseTree("<" + syntheticRoot + ">" + cleaned + "</" + syntheticRoot + ">")
	if wrappedErr == nil {
		return root, nil
	}
	root, rawErr := parseTree(cleaned)
	if rawErr == nil {
		return root, nil
	}
	return nil, &ParseError{Wrapped: wrappedErr, Unwrapped: rawErr}
}

// parseTree construit l'arbre d'un document à racine unique.
func parseTree(s string) (*Node, error) {
	dec := xml.NewDecoder(strings.NewReader(s))
	dec.Strict = true

	var root *Node
	var stack []*Node

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) == 0 && root != nil {
				return nil, fmt.Errorf("contenu après l'élément racine <%s>", root.Name)
			}
			n := &Node{Name: t.Name.Local}
			for _, a := range t.Attr {
				n.Attrs = append(n.Attrs, Attr{Name: attrName(a.Name), Value: a.Value})
			}
			if len(stack) == 0 {
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)

		case xml.EndElement:
			// le décodeur strict vérifie déjà l'appariement des balises
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 {
				if strings.TrimSpace(string(t)) != "" {
					return nil, errors.New("texte hors de l'élément racine")
				}
				continue
			}
			cur := stack[len(stack)-1]
			if len(cur.Children) == 0 {
				cur.Text += string(t)
			}
		}
		// commentaires, instructions et directives : ignorés
	}

	if root == nil {
		return nil, errors.New("aucun élément trouvé")
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("élément <%s> non fermé", stack[len(stack)-1].Name)
	}
	return root, nil
}

// attrName : nom local, sauf si un préfixe a survécu au nettoyage
func attrName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}
