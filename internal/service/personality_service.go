package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"traits-matcher/internal/domain"
	"traits-matcher/internal/repository"
)

// PersonalityService aplica observaciones de rasgos al promedio corrido de
// una persona. El read-modify-write se serializa por persona con un mutex
// por clave para cerrar la anomalía de lost-update entre requests simultáneos.
type PersonalityService struct {
	persons repository.PersonRepository
	traits  repository.TraitRepository
	logger  *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewPersonalityService(
	persons repository.PersonRepository,
	traits repository.TraitRepository,
	logger *zap.Logger,
) *PersonalityService {
	return &PersonalityService{
		persons: persons,
		traits:  traits,
		logger:  logger,
		locks:   make(map[string]*sync.Mutex),
	}
}

// AddDescription tokeniza la descripción y pliega cada palabra reconocida
// como rasgo en la personalidad de la persona, en orden de aparición. Cada
// observación parte del estado dejado por la anterior: varias palabras en una
// misma descripción se componen. Una descripción sin rasgos reconocidos es un
// no-op exitoso.
func (s *PersonalityService) AddDescription(ctx context.Context, name, description string) error {
	unlock := s.lockPerson(name)
	defer unlock()

	person, err := s.persons.GetByName(ctx, name)
	if err != nil {
		return fmt.Errorf("get person %q: %w", name, err)
	}

	observed := 0
	for _, word := range Tokenize(description) {
		trait, err := s.traits.GetByName(ctx, word)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("get trait %q: %w", word, err)
		}

		person = person.Observe(trait)
		if err := s.persons.UpdatePersonality(ctx, name, person.Personality(), person.NFriendliness, person.NDominance); err != nil {
			return fmt.Errorf("update person %q: %w", name, err)
		}
		observed++
	}

	if observed == 0 {
		s.logger.Warn("no traits found in description", zap.String("person", name))
		return nil
	}

	s.logger.Info("personality updated",
		zap.String("person", name),
		zap.Int("observations", observed),
		zap.Float64("friendliness", person.Friendliness),
		zap.Float64("dominance", person.Dominance),
	)
	return nil
}

func (s *PersonalityService) lockPerson(name string) func() {
	s.mu.Lock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}
