// Package contacts implements the in-memory contact store.
package contacts

import (
	"slices"
	"sort"
)

// Person is a named contact with phone numbers and email addresses in the
// order they were added. Duplicates are kept.
type Person struct {
	Name   string   `json:"name" yaml:"name"`
	Phones []string `json:"phones" yaml:"phones"`
	Emails []string `json:"emails" yaml:"emails"`
}

// clone returns a deep copy with non-nil slices.
func (p *Person) clone() Person {
	return Person{
		Name:   p.Name,
		Phones: append([]string{}, p.Phones...),
		Emails: append([]string{}, p.Emails...),
	}
}

// Store maps names to people. Names are case-sensitive.
// A Store is not safe for concurrent use.
type Store struct {
	people map[string]*Person
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{people: make(map[string]*Person)}
}

// AddPhone appends phone to the named person, creating the person if needed.
func (s *Store) AddPhone(name, phone string) {
	p := s.getOrCreate(name)
	p.Phones = append(p.Phones, phone)
}

// AddEmail appends email to the named person, creating the person if needed.
func (s *Store) AddEmail(name, email string) {
	p := s.getOrCreate(name)
	p.Emails = append(p.Emails, email)
}

// Show returns a copy of the named person.
// Returns (zero, false) if no such person exists.
func (s *Store) Show(name string) (Person, bool) {
	p, ok := s.people[name]
	if !ok {
		return Person{}, false
	}
	return p.clone(), true
}

// Find returns the sorted names of people whose phones or emails contain
// value exactly. Returns nil if nobody matches.
func (s *Store) Find(value string) []string {
	var names []string
	for name, p := range s.people {
		if slices.Contains(p.Phones, value) || slices.Contains(p.Emails, value) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Snapshot returns deep copies of every person, sorted by name.
func (s *Store) Snapshot() []Person {
	out := make([]Person, 0, len(s.people))
	for _, p := range s.people {
		out = append(out, p.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of people in the store.
func (s *Store) Len() int {
	return len(s.people)
}

func (s *Store) getOrCreate(name string) *Person {
	p, ok := s.people[name]
	if !ok {
		p = &Person{Name: name}
		s.people[name] = p
	}
	return p
}
