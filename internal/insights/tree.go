package insights

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedTree indica que el arbol recibido no tiene la forma esperada.
var ErrMalformedTree = errors.New("malformed category tree")

// CategoryNode es un nodo del arbol de perfil devuelto por Personality Insights.
// Un nodo interno tiene Children; una hoja tiene ID, Percentage y Category.
type CategoryNode struct {
	ID            string         `json:"id"`
	Name          string         `json:"name,omitempty"`
	Category      string         `json:"category,omitempty"`
	Percentage    float64        `json:"percentage"`
	SamplingError float64        `json:"sampling_error,omitempty"`
	Children      []CategoryNode `json:"children,omitempty"`

	hasPercentage bool
}

// UnmarshalJSON registra si percentage vino en el payload; un 0 ausente no es un puntaje.
func (n *CategoryNode) UnmarshalJSON(data []byte) error {
	type plain CategoryNode
	var aux struct {
		plain
		Percentage *float64 `json:"percentage"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*n = CategoryNode(aux.plain)
	if aux.Percentage != nil {
		n.Percentage = *aux.Percentage
		n.hasPercentage = true
	}
	return nil
}

func (n CategoryNode) hasChildren() bool {
	return n.Children != nil
}

// DecodeTree parsea el arbol y valida la forma de sus hojas.
func DecodeTree(raw []byte) (CategoryNode, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return CategoryNode{}, fmt.Errorf("%w: empty tree", ErrMalformedTree)
	}
	var root CategoryNode
	if err := json.Unmarshal(raw, &root); err != nil {
		return CategoryNode{}, fmt.Errorf("%w: %v", ErrMalformedTree, err)
	}
	if err := Validate(root); err != nil {
		return CategoryNode{}, err
	}
	return root, nil
}

// Validate exige una raiz con hijos y id, category y percentage en cada hoja.
// No hay recuperacion parcial: el primer nodo invalido corta.
func Validate(root CategoryNode) error {
	if len(root.Children) == 0 {
		return fmt.Errorf("%w: root has no children", ErrMalformedTree)
	}
	for i, child := range root.Children {
		if err := validate(child, fmt.Sprintf("children[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

func validate(n CategoryNode, path string) error {
	if !n.hasChildren() {
		if n.ID == "" {
			return fmt.Errorf("%w: leaf without id at %s", ErrMalformedTree, path)
		}
		if n.Category == "" {
			return fmt.Errorf("%w: leaf %q without category at %s", ErrMalformedTree, n.ID, path)
		}
		if !n.hasPercentage {
			return fmt.Errorf("%w: leaf %q without percentage at %s", ErrMalformedTree, n.ID, path)
		}
		return nil
	}
	for i, child := range n.Children {
		if err := validate(child, fmt.Sprintf("%s.children[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}
