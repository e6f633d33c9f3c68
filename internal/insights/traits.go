package insights

import (
	"errors"

	"president-insights/internal/domain"
)

// BuildTraits llena el registro fijo buscando cada faceta en el mapa.
// Cada faceta ausente aporta su propio error.
func BuildTraits(m TraitMap) (domain.PersonalityTraits, error) {
	var traits domain.PersonalityTraits
	fields := traits.Fields()

	var errs []error
	for _, name := range domain.TraitNames {
		v, err := m.Get(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		*fields[name] = v
	}
	if len(errs) > 0 {
		return domain.PersonalityTraits{}, errors.Join(errs...)
	}
	return traits, nil
}
