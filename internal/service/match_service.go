package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"traits-matcher/internal/domain"
	"traits-matcher/internal/repository"
)

// Resultados centinela devueltos dentro de la lista de nombres. Se mantienen
// como valores por compatibilidad: distinguen "no hay personas en el store"
// de "había personas pero el ranking quedó vacío".
const (
	NoPersonsFound    = "No persons found in database"
	NoMatchingPersons = "No matching persons were found"
)

// MatchService calcula una personalidad objetivo a partir del texto de una
// vacante y rankea a todas las personas por cercanía euclidiana.
type MatchService struct {
	persons repository.PersonRepository
	traits  repository.TraitRepository
	logger  *zap.Logger
}

func NewMatchService(
	persons repository.PersonRepository,
	traits repository.TraitRepository,
	logger *zap.Logger,
) *MatchService {
	return &MatchService{persons: persons, traits: traits, logger: logger}
}

// FindMatches devuelve los nombres de todas las personas ordenados por
// distancia ascendente a la personalidad objetivo de la descripción.
// Cada palabra-rasgo distinta pesa 1.0 sin importar cuántas veces aparezca;
// sin rasgos reconocidos el objetivo es el origen (0, 0).
func (s *MatchService) FindMatches(ctx context.Context, companyName, jobDescription string) ([]string, error) {
	matched := make(map[string]domain.Trait)
	for _, word := range Tokenize(jobDescription) {
		if _, ok := matched[word]; ok {
			continue
		}
		trait, err := s.traits.GetByName(ctx, word)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get trait %q: %w", word, err)
		}
		matched[word] = trait
	}

	var target domain.Personality
	if len(matched) == 0 {
		s.logger.Info("no traits found in job description", zap.String("company", companyName))
	} else {
		for _, t := range matched {
			target.Friendliness += t.Friendliness
			target.Dominance += t.Dominance
		}
		target.Friendliness /= float64(len(matched))
		target.Dominance /= float64(len(matched))
		s.logger.Info("calculated target personality",
			zap.String("company", companyName),
			zap.Float64("friendliness", target.Friendliness),
			zap.Float64("dominance", target.Dominance),
		)
	}

	persons, err := s.persons.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	if len(persons) == 0 {
		s.logger.Info("no persons in database", zap.String("company", companyName))
		return []string{NoPersonsFound}, nil
	}

	type ranked struct {
		name     string
		distance float64
	}
	ranking := make([]ranked, 0, len(persons))
	for _, p := range persons {
		ranking = append(ranking, ranked{
			name:     p.Name,
			distance: p.Personality().DistanceTo(target),
		})
	}

	// Orden estable: empates conservan el orden de lectura del store.
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].distance < ranking[j].distance
	})

	matches := make([]string, 0, len(ranking))
	for _, r := range ranking {
		matches = append(matches, r.name)
	}

	s.logger.Info("matches ranked",
		zap.String("company", companyName),
		zap.Int("count", len(matches)),
	)

	if len(matches) == 0 {
		return []string{NoMatchingPersons}, nil
	}
	return matches, nil
}
