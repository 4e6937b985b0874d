// Package fakestore is an in-memory pet store that behaves the way the public pet store service is
// documented to, for exercising the contract tests without a network.
package fakestore

import (
	"sort"
	"sync"

	"github.com/openpetstore/petstore-contract-tests/servicedef"
)

// MemoryStore holds pets. Orders are only numbered, since nothing reads them back.
type MemoryStore struct {
	lock        sync.Mutex
	pets        map[int64]servicedef.Pet
	nextOrderID int64
}

// New creates a store seeded with one pet in each status; pet 1 is available.
func New() *MemoryStore {
	s := &MemoryStore{
		pets:        make(map[int64]servicedef.Pet),
		nextOrderID: 1,
	}
	for i, status := range servicedef.AllPetStatuses {
		id := int64(i + 1)
		s.pets[id] = servicedef.Pet{
			ID:        id,
			Category:  &servicedef.Category{ID: 1, Name: "Dogs"},
			Name:      "doggie",
			PhotoURLs: []string{},
			Status:    status,
		}
	}
	return s
}

func (s *MemoryStore) Pet(id int64) (servicedef.Pet, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	p, ok := s.pets[id]
	return p, ok
}

// PutPet adds or replaces a pet.
func (s *MemoryStore) PutPet(p servicedef.Pet) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.pets[p.ID] = p
}

// DeletePet removes a pet, returning false if there was none.
func (s *MemoryStore) DeletePet(id int64) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	if _, ok := s.pets[id]; !ok {
		return false
	}
	delete(s.pets, id)
	return true
}

// PetsByStatus returns the pets whose status is any of statuses, ordered by ID. The result is
// never nil.
func (s *MemoryStore) PetsByStatus(statuses ...string) []servicedef.Pet {
	want := make(map[string]bool, len(statuses))
	for _, st := range statuses {
		want[st] = true
	}
	s.lock.Lock()
	ret := []servicedef.Pet{}
	for _, p := range s.pets {
		if want[p.Status] {
			ret = append(ret, p)
		}
	}
	s.lock.Unlock()
	sort.Slice(ret, func(i, j int) bool { return ret[i].ID < ret[j].ID })
	return ret
}

// PlaceOrder accepts an order, assigning an ID if it has none.
func (s *MemoryStore) PlaceOrder(o servicedef.Order) servicedef.Order {
	s.lock.Lock()
	defer s.lock.Unlock()
	if o.ID == 0 {
		o.ID = s.nextOrderID
		s.nextOrderID++
	}
	return o
}
