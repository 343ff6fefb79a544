package envprofile

// KeyMap is an insertion-ordered mapping of configuration keys to values.
// Setting an existing key replaces its value and keeps its position.
type KeyMap struct {
	keys   []string
	values map[string]string
}

// NewKeyMap returns an empty KeyMap.
func NewKeyMap() *KeyMap {
	return &KeyMap{values: make(map[string]string)}
}

// KeyMapOf builds a KeyMap from alternating key, value arguments.
// A trailing key without a value is ignored.
func KeyMapOf(pairs ...string) *KeyMap {
	m := NewKeyMap()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i], pairs[i+1])
	}
	return m
}

// Set assigns value to key.
func (m *KeyMap) Set(key, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Lookup returns the value of key and whether it was present.
// A nil KeyMap holds no keys.
func (m *KeyMap) Lookup(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.values[key]
	return v, ok
}

// Get returns the value of key or the empty string.
func (m *KeyMap) Get(key string) string {
	v, _ := m.Lookup(key)
	return v
}

// GetOr returns the value of key, or fallback when key is absent.
// A key present with an empty value yields the empty value.
func (m *KeyMap) GetOr(key, fallback string) string {
	if v, ok := m.Lookup(key); ok {
		return v
	}
	return fallback
}

// Keys returns the keys in insertion order.
func (m *KeyMap) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Len returns the number of keys.
func (m *KeyMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}
