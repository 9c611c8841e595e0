package domain

// Trait es un punto de referencia fijo en el espacio de personalidad.
// Se crea una sola vez y es inmutable después.
type Trait struct {
	Name         string  `json:"trait"`
	Friendliness float64 `json:"friendliness"`
	Dominance    float64 `json:"dominance"`
}

// Personality devuelve la posición del rasgo como personalidad objetivo.
func (t Trait) Personality() Personality {
	return Personality{Friendliness: t.Friendliness, Dominance: t.Dominance}
}
