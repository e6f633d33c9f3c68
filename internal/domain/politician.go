package domain

import "time"

type Politician struct {
	Handle string `json:"handle"`
	Name   string `json:"name"`
}

// PoliticianProfile es el resultado inmutable de una corrida de analisis.
type PoliticianProfile struct {
	ID              string             `json:"id"`
	Handle          string             `json:"handle"`
	Name            string             `json:"name"`
	ProfileImageURL string             `json:"profile_image_url"`
	WordCount       int                `json:"word_count"`
	Traits          PersonalityTraits  `json:"traits"`
	Flattened       map[string]float64 `json:"flattened,omitempty"`
	AnalyzedAt      time.Time          `json:"analyzed_at"`
}

// SimilarPolitician es un vecino en el espacio de rasgos.
type SimilarPolitician struct {
	Handle   string  `json:"handle"`
	Name     string  `json:"name"`
	Distance float64 `json:"distance"`
}
