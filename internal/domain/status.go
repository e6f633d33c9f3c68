package domain

// TwitterUser es el subconjunto del usuario de Twitter que usamos.
type TwitterUser struct {
	ScreenName           string `json:"screen_name"`
	Name                 string `json:"name"`
	ProfileImageURL      string `json:"profile_image_url"`
	ProfileImageURLHTTPS string `json:"profile_image_url_https"`
}

// Status representa un tweet del timeline.
type Status struct {
	ID       int64       `json:"id"`
	Text     string      `json:"text"`
	FullText string      `json:"full_text"`
	Lang     string      `json:"lang"`
	User     TwitterUser `json:"user"`
}

// Body devuelve el texto completo cuando Twitter lo envia en modo extended.
func (s Status) Body() string {
	if s.FullText != "" {
		return s.FullText
	}
	return s.Text
}
