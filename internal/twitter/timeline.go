package twitter

import (
	"errors"
	"strings"

	"president-insights/internal/domain"
)

// ErrNoStatuses se devuelve cuando el timeline vino vacio.
var ErrNoStatuses = errors.New("timeline has no statuses")

// ProfilePictureURL toma la imagen del autor del tweet mas reciente en tamaño original.
func ProfilePictureURL(statuses []domain.Status) (string, error) {
	if len(statuses) == 0 {
		return "", ErrNoStatuses
	}
	user := statuses[0].User
	img := user.ProfileImageURLHTTPS
	if img == "" {
		img = user.ProfileImageURL
	}
	return strings.ReplaceAll(img, "_normal", ""), nil
}

// ComposeCorpus une el texto de los tweets en ingles separado por espacios.
func ComposeCorpus(statuses []domain.Status) string {
	parts := make([]string, 0, len(statuses))
	for _, s := range statuses {
		if s.Lang != "en" {
			continue
		}
		text := strings.TrimSpace(s.Body())
		if text == "" {
			continue
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, " ")
}
