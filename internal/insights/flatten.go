package insights

import (
	"errors"
	"fmt"

	"president-insights/internal/domain"
)

// ErrTraitNotFound se devuelve al pedir un rasgo que el aplanado no registro.
var ErrTraitNotFound = errors.New("trait not found")

// TraitMap mapea nombre de rasgo a percentil (0-1).
type TraitMap map[string]float64

// Get busca un rasgo por nombre.
func (m TraitMap) Get(name string) (float64, error) {
	v, ok := m[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrTraitNotFound, name)
	}
	return v, nil
}

// Flatten extrae las hojas de personalidad del cuarto nivel del arbol.
//
// Solo se desciende por nodos con hijos, y solo se registran los nodos del
// cuarto nivel. Una hoja de personalidad en el tercer nivel (sin hijos) NO se
// registra, y los perfiles guardados dependen de ese resultado.
// Ver FlattenDeep para la variante que si las recoge.
func Flatten(root CategoryNode) TraitMap {
	out := make(TraitMap)
	for _, a := range root.Children {
		if !a.hasChildren() {
			continue
		}
		for _, b := range a.Children {
			if !b.hasChildren() {
				continue
			}
			for _, c := range b.Children {
				if !c.hasChildren() {
					continue
				}
				for _, d := range c.Children {
					if d.Category == domain.CategoryPersonality {
						out[d.ID] = d.Percentage
					}
				}
			}
		}
	}
	return out
}

// FlattenDeep registra toda hoja de personalidad sin importar la profundidad.
// Cambia el comportamiento respecto a Flatten; el pipeline no la usa.
func FlattenDeep(root CategoryNode) TraitMap {
	out := make(TraitMap)
	var walk func(n CategoryNode)
	walk = func(n CategoryNode) {
		for _, child := range n.Children {
			if child.hasChildren() {
				walk(child)
				continue
			}
			if child.Category == domain.CategoryPersonality {
				out[child.ID] = child.Percentage
			}
		}
	}
	walk(root)
	return out
}
