package domain

// CategoryPersonality es la categoria que Watson asigna a los rasgos Big Five y sus facetas.
const CategoryPersonality = "personality"

// TraitNames enumera las facetas que expone PersonalityTraits.
// El orden es canonico: se usa tambien para construir el vector de rasgos.
var TraitNames = []string{
	"Cheerfulness",
	"Trust",
	"Cautiousness",
	"Orderliness",
	"Liberalism",
	"Anxiety",
	"Achievement striving",
	"Altruism",
	"Vulnerability",
	"Self-discipline",
	"Self-consciousness",
	"Assertiveness",
	"Friendliness",
	"Immoderation",
	"Depression",
	"Emotionality",
	"Morality",
	"Cooperation",
	"Anger",
	"Dutifulness",
	"Excitement-seeking",
	"Artistic interests",
	"Gregariousness",
	"Imagination",
	"Adventurousness",
	"Sympathy",
	"Activity level",
	"Modesty",
	"Self-efficacy",
	"Intellect",
}

// PersonalityTraits es el registro de esquema fijo con un campo por faceta.
type PersonalityTraits struct {
	Cheerfulness        float64 `json:"cheerfulness"`
	Trust               float64 `json:"trust"`
	Cautiousness        float64 `json:"cautiousness"`
	Orderliness         float64 `json:"orderliness"`
	Liberalism          float64 `json:"liberalism"`
	Anxiety             float64 `json:"anxiety"`
	AchievementStriving float64 `json:"achievement_striving"`
	Altruism            float64 `json:"altruism"`
	Vulnerability       float64 `json:"vulnerability"`
	SelfDiscipline      float64 `json:"self_discipline"`
	SelfConsciousness   float64 `json:"self_consciousness"`
	Assertiveness       float64 `json:"assertiveness"`
	Friendliness        float64 `json:"friendliness"`
	Immoderation        float64 `json:"immoderation"`
	Depression          float64 `json:"depression"`
	Emotionality        float64 `json:"emotionality"`
	Morality            float64 `json:"morality"`
	Cooperation         float64 `json:"cooperation"`
	Anger               float64 `json:"anger"`
	Dutifulness         float64 `json:"dutifulness"`
	ExcitementSeeking   float64 `json:"excitement_seeking"`
	ArtisticInterests   float64 `json:"artistic_interests"`
	Gregariousness      float64 `json:"gregariousness"`
	Imagination         float64 `json:"imagination"`
	Adventurousness     float64 `json:"adventurousness"`
	Sympathy            float64 `json:"sympathy"`
	ActivityLevel       float64 `json:"activity_level"`
	Modesty             float64 `json:"modesty"`
	SelfEfficacy        float64 `json:"self_efficacy"`
	Intellect           float64 `json:"intellect"`
}

// Fields devuelve punteros a cada campo indexados por nombre de faceta.
func (p *PersonalityTraits) Fields() map[string]*float64 {
	return map[string]*float64{
		"Cheerfulness":         &p.Cheerfulness,
		"Trust":                &p.Trust,
		"Cautiousness":         &p.Cautiousness,
		"Orderliness":          &p.Orderliness,
		"Liberalism":           &p.Liberalism,
		"Anxiety":              &p.Anxiety,
		"Achievement striving": &p.AchievementStriving,
		"Altruism":             &p.Altruism,
		"Vulnerability":        &p.Vulnerability,
		"Self-discipline":      &p.SelfDiscipline,
		"Self-consciousness":   &p.SelfConsciousness,
		"Assertiveness":        &p.Assertiveness,
		"Friendliness":         &p.Friendliness,
		"Immoderation":         &p.Immoderation,
		"Depression":           &p.Depression,
		"Emotionality":         &p.Emotionality,
		"Morality":             &p.Morality,
		"Cooperation":          &p.Cooperation,
		"Anger":                &p.Anger,
		"Dutifulness":          &p.Dutifulness,
		"Excitement-seeking":   &p.ExcitementSeeking,
		"Artistic interests":   &p.ArtisticInterests,
		"Gregariousness":       &p.Gregariousness,
		"Imagination":          &p.Imagination,
		"Adventurousness":      &p.Adventurousness,
		"Sympathy":             &p.Sympathy,
		"Activity level":       &p.ActivityLevel,
		"Modesty":              &p.Modesty,
		"Self-efficacy":        &p.SelfEfficacy,
		"Intellect":            &p.Intellect,
	}
}

// Vector devuelve los valores en el orden de TraitNames.
func (p PersonalityTraits) Vector() []float32 {
	fields := p.Fields()
	out := make([]float32, 0, len(TraitNames))
	for _, name := range TraitNames {
		out = append(out, float32(*fields[name]))
	}
	return out
}
