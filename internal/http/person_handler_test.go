package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"traits-matcher/internal/domain"
	"traits-matcher/internal/service"
)

type mockPersonRepo struct {
	persons map[string]domain.Person
	order   []string
}

func newMockPersonRepo() *mockPersonRepo {
	return &mockPersonRepo{persons: make(map[string]domain.Person)}
}

func (m *mockPersonRepo) Create(_ context.Context, name string) error {
	if _, ok := m.persons[name]; ok {
		return fmt.Errorf("person %q: %w", name, domain.ErrAlreadyExists)
	}
	m.persons[name] = domain.Person{Name: name}
	m.order = append(m.order, name)
	return nil
}

func (m *mockPersonRepo) GetByName(_ context.Context, name string) (domain.Person, error) {
	p, ok := m.persons[name]
	if !ok {
		return domain.Person{}, fmt.Errorf("person %q: %w", name, domain.ErrNotFound)
	}
	return p, nil
}

func (m *mockPersonRepo) ListAll(_ context.Context) ([]domain.Person, error) {
	persons := make([]domain.Person, 0, len(m.order))
	for _, name := range m.order {
		persons = append(persons, m.persons[name])
	}
	return persons, nil
}

func (m *mockPersonRepo) UpdatePersonality(_ context.Context, name string, p domain.Personality, nFriendliness, nDominance int) error {
	person, ok := m.persons[name]
	if !ok {
		return fmt.Errorf("person %q: %w", name, domain.ErrNotFound)
	}
	person.Friendliness = p.Friendliness
	person.Dominance = p.Dominance
	person.NFriendliness = nFriendliness
	person.NDominance = nDominance
	m.persons[name] = person
	return nil
}

type mockTraitRepo struct {
	traits map[string]domain.Trait
}

func newMockTraitRepo(traits ...domain.Trait) *mockTraitRepo {
	m := &mockTraitRepo{traits: make(map[string]domain.Trait)}
	for _, t := range traits {
		m.traits[t.Name] = t
	}
	return m
}

func (m *mockTraitRepo) Create(_ context.Context, trait domain.Trait) error {
	if _, ok := m.traits[trait.Name]; ok {
		return fmt.Errorf("trait %q: %w", trait.Name, domain.ErrAlreadyExists)
	}
	m.traits[trait.Name] = trait
	return nil
}

func (m *mockTraitRepo) GetByName(_ context.Context, name string) (domain.Trait, error) {
	t, ok := m.traits[name]
	if !ok {
		return domain.Trait{}, fmt.Errorf("trait %q: %w", name, domain.ErrNotFound)
	}
	return t, nil
}

func (m *mockTraitRepo) ListAll(_ context.Context) ([]domain.Trait, error) {
	traits := make([]domain.Trait, 0, len(m.traits))
	for _, t := range m.traits {
		traits = append(traits, t)
	}
	return traits, nil
}

func setupRouter(persons *mockPersonRepo, traits *mockTraitRepo, auth gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	personality := service.NewPersonalityService(persons, traits, logger)
	matcher := service.NewMatchService(persons, traits, logger)

	personH := NewPersonHandler(logger, persons, personality)
	traitH := NewTraitHandler(logger, traits)
	matchH := NewMatchHandler(logger, matcher)
	health := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) }

	return NewRouter(logger, personH, traitH, matchH, health, auth)
}

func jsonBody(t *testing.T, body any) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatalf("encode body: %v", err)
	}
	return &buf
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreatePerson(t *testing.T) {
	router := setupRouter(newMockPersonRepo(), newMockTraitRepo(), nil)

	w := doJSON(router, http.MethodPost, "/persons", gin.H{"name": "Ana"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Person 'Ana' created.") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestCreatePersonDuplicate(t *testing.T) {
	persons := newMockPersonRepo()
	router := setupRouter(persons, newMockTraitRepo(), nil)

	if w := doJSON(router, http.MethodPost, "/persons", gin.H{"name": "Ana"}); w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	w := doJSON(router, http.MethodPost, "/persons", gin.H{"name": "Ana"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}

	// El registro original no cambió.
	if p := persons.persons["Ana"]; p.NFriendliness != 0 || p.Friendliness != 0 {
		t.Fatalf("expected stored record untouched, got %+v", p)
	}
}

func TestCreatePersonValidation(t *testing.T) {
	router := setupRouter(newMockPersonRepo(), newMockTraitRepo(), nil)

	if w := doJSON(router, http.MethodPost, "/persons", gin.H{"name": "   "}); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank name, got %d", w.Code)
	}
	long := strings.Repeat("x", domain.MaxNameLen+1)
	if w := doJSON(router, http.MethodPost, "/persons", gin.H{"name": long}); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for overlong name, got %d", w.Code)
	}
}

func TestAddDescription(t *testing.T) {
	persons := newMockPersonRepo()
	traits := newMockTraitRepo(
		domain.Trait{Name: "friendly", Friendliness: 9.0, Dominance: 6.0},
		domain.Trait{Name: "bossy", Friendliness: -5.0, Dominance: -3.0},
	)
	router := setupRouter(persons, traits, nil)

	if w := doJSON(router, http.MethodPost, "/persons", gin.H{"name": "Ana"}); w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}

	w := doJSON(router, http.MethodPost, "/persons/Ana/description", gin.H{"description": "friendly but bossy"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Description added to person 'Ana'.") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}

	p := persons.persons["Ana"]
	if p.Friendliness != 2.0 || p.Dominance != 1.5 {
		t.Fatalf("expected (2.0, 1.5), got (%v, %v)", p.Friendliness, p.Dominance)
	}
}

func TestAddDescriptionUnknownPerson(t *testing.T) {
	router := setupRouter(newMockPersonRepo(), newMockTraitRepo(), nil)

	w := doJSON(router, http.MethodPost, "/persons/ghost/description", gin.H{"description": "friendly"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestAddDescriptionTooLong(t *testing.T) {
	persons := newMockPersonRepo()
	router := setupRouter(persons, newMockTraitRepo(), nil)

	if w := doJSON(router, http.MethodPost, "/persons", gin.H{"name": "Ana"}); w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}

	long := strings.Repeat("a", domain.MaxTextLen+1)
	w := doJSON(router, http.MethodPost, "/persons/Ana/description", gin.H{"description": long})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for overlong description, got %d", w.Code)
	}
}

func TestGetPerson(t *testing.T) {
	persons := newMockPersonRepo()
	router := setupRouter(persons, newMockTraitRepo(), nil)

	if w := doJSON(router, http.MethodPost, "/persons", gin.H{"name": "Ana"}); w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}

	w := doJSON(router, http.MethodGet, "/persons/Ana", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resources []personResource
	if err := json.Unmarshal(w.Body.Bytes(), &resources); err != nil {
		t.Fatalf("expected a JSON array, got %s", w.Body.String())
	}
	if len(resources) != 1 || resources[0].Name != "Ana" {
		t.Fatalf("unexpected payload: %+v", resources)
	}
}

func TestGetPersonNotFoundErrorBody(t *testing.T) {
	router := setupRouter(newMockPersonRepo(), newMockTraitRepo(), nil)

	w := doJSON(router, http.MethodGet, "/persons/ghost", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	var payload map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("expected an error object, got %s", w.Body.String())
	}
	if payload["error"] == "" {
		t.Fatalf("expected an error field, got %s", w.Body.String())
	}
}

func TestListPersonsEmpty(t *testing.T) {
	router := setupRouter(newMockPersonRepo(), newMockTraitRepo(), nil)

	w := doJSON(router, http.MethodGet, "/persons", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %s", w.Body.String())
	}
}
