package ttml

// Attr est un attribut XML (nom local, valeur décodée).
type Attr struct {
	Name  string
	Value string
}

// Node est un élément de l'arbre analysé. L'arbre n'est plus modifié après Parse.
// Text ne contient que le texte situé avant le premier enfant ; le texte qui suit
// un enfant (la "queue") est ignoré.
type Node struct {
	Name     string
	Attrs    []Attr
	Text     string
	Children []*Node
}

// Attr retourne la valeur de l'attribut name et true s'il est présent.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// ChildrenNamed retourne les enfants directs portant le nom local name, dans l'ordre du document.
func (n *Node) ChildrenNamed(name string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// FindAll retourne tous les descendants (n exclu) nommés name, quelle que soit leur
// profondeur, en ordre de document (parcours préfixe).
func (n *Node) FindAll(name string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	var walk func(*Node)
	walk = func(cur *Node) {
		for _, c := range cur.Children {
			if c.Name == name {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}
