package domain

import "math"

// Límites de validación compartidos por el boundary HTTP y el CLI.
const (
	ScoreMin   = -10.0
	ScoreMax   = 10.0
	MaxNameLen = 100
	MaxTextLen = 1000
)

// Personality es un punto en el espacio 2D (friendliness, dominance).
type Personality struct {
	Friendliness float64 `json:"friendliness"`
	Dominance    float64 `json:"dominance"`
}

// DistanceTo devuelve la distancia euclidiana hacia otra personalidad.
func (p Personality) DistanceTo(other Personality) float64 {
	df := p.Friendliness - other.Friendliness
	dd := p.Dominance - other.Dominance
	return math.Sqrt(df*df + dd*dd)
}

// ValidScore indica si un puntaje cae dentro del rango permitido (inclusivo).
func ValidScore(v float64) bool {
	return v >= ScoreMin && v <= ScoreMax
}
