package animator

// Store is a small keyed scratch space embedded in manager, scene and
// generator. Generators keep per-effect state here (text, offsets,
// counters) so scene definitions stay declarative.
type Store struct {
	data map[string]any
}

// Set stores alternating key/value pairs: Set("text", t, "offset", 0).
// A trailing key with no value is ignored.
func (s *Store) Set(pairs ...any) {
	if s.data == nil {
		s.data = make(map[string]any)
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			continue
		}
		s.data[key] = pairs[i+1]
	}
}

// Get returns the value for a key, nil when absent
func (s *Store) Get(key string) any {
	return s.data[key]
}

// GetString returns a string value, or fallback when absent or mistyped
func (s *Store) GetString(key, fallback string) string {
	if v, ok := s.data[key].(string); ok {
		return v
	}
	return fallback
}

// GetInt returns an int value, or fallback when absent or mistyped
func (s *Store) GetInt(key string, fallback int) int {
	if v, ok := s.data[key].(int); ok {
		return v
	}
	return fallback
}

// Update applies an operation to an existing value; absent keys are left
// untouched
func (s *Store) Update(key string, oper func(any) any) {
	if _, ok := s.data[key]; ok {
		s.data[key] = oper(s.data[key])
	}
}
