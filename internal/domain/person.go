package domain

// Person representa a una persona con su estimación acumulada de personalidad.
// Los contadores registran cuántas observaciones se plegaron en cada eje.
type Person struct {
	Name          string  `json:"name"`
	Friendliness  float64 `json:"friendliness"`
	Dominance     float64 `json:"dominance"`
	NFriendliness int     `json:"n_friendliness"`
	NDominance    int     `json:"n_dominance"`
}

// Personality devuelve el punto actual de la persona en el espacio de rasgos.
func (p Person) Personality() Personality {
	return Personality{Friendliness: p.Friendliness, Dominance: p.Dominance}
}

// Observe pliega una observación de rasgo en el promedio corrido de ambos ejes.
// Equivale a recalcular la media aritmética de todas las observaciones vistas
// hasta ahora, sin almacenar el historial. Ambos ejes avanzan juntos.
func (p Person) Observe(t Trait) Person {
	p.Friendliness = (p.Friendliness*float64(p.NFriendliness) + t.Friendliness) / float64(p.NFriendliness+1)
	p.Dominance = (p.Dominance*float64(p.NDominance) + t.Dominance) / float64(p.NDominance+1)
	p.NFriendliness++
	p.NDominance++
	return p
}
