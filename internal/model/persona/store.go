package persona

// Store exposes persona retrieval for the UI and the AI service.
type Store interface {
	List() []Persona
	FindByID(id string) (Persona, bool)
}

// MemoryStore implements Store with an in-memory slice; personas are fixed
// for the lifetime of the process.
type MemoryStore struct {
	items []Persona
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied personas.
func NewMemoryStore(items []Persona) *MemoryStore {
	return &MemoryStore{items: append([]Persona(nil), items...)}
}

// List returns the known personas.
func (s *MemoryStore) List() []Persona {
	return append([]Persona(nil), s.items...)
}

// FindByID looks up a persona by identifier.
func (s *MemoryStore) FindByID(id string) (Persona, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Persona{}, false
}

// Resolve returns the persona with the given id, falling back to the default
// companion when the id is empty or unknown.
func Resolve(s Store, id string) Persona {
	if id != "" {
		if p, ok := s.FindByID(id); ok {
			return p
		}
	}
	if p, ok := s.FindByID(DefaultID); ok {
		return p
	}
	items := s.List()
	if len(items) > 0 {
		return items[0]
	}
	return Persona{ID: DefaultID, Name: "Fox"}
}
