// Package cart implements the client-side shopping cart: an ordered list of
// product lines persisted as a single JSON blob through a pluggable Storage
// backend. Every mutation persists the full list and then notifies
// subscribers so quantity badges elsewhere can re-read the count.
package cart

import (
	"encoding/json"
	"sync"
	"time"
)

// Entry is one denormalized product line in an unsubmitted order.
type Entry struct {
	ProductID            string    `json:"_id"`
	Name                 string    `json:"name"`
	Price                float64   `json:"price"`
	Quantity             int       `json:"quantity"`
	Image                string    `json:"image"`
	Brand                string    `json:"brand"`
	Category             string    `json:"category"`
	PrescriptionRequired bool      `json:"prescriptionRequired"`
	ExpiryDate           time.Time `json:"expiryDate"`
}

// Storage persists the serialized cart. Load returns (nil, nil) when
// nothing has been stored yet.
type Storage interface {
	Load() ([]byte, error)
	Save(data []byte) error
	Clear() error
}

type Store struct {
	mu      sync.Mutex
	storage Storage
	subs    []func()
}

func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// Subscribe registers fn to run after every successful mutation.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Items returns the cart lines in insertion order. Absent or malformed
// storage is treated as an empty cart.
func (s *Store) Items() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Count is the sum of line quantities.
func (s *Store) Count() int {
	var n int
	for _, e := range s.Items() {
		n += e.Quantity
	}
	return n
}

// Subtotal is the sum of price×quantity over all lines.
func (s *Store) Subtotal() float64 {
	var total float64
	for _, e := range s.Items() {
		total += e.Price * float64(e.Quantity)
	}
	return total
}

// Add puts product in the cart with quantity 1, or increments the existing
// line's quantity by 1.
func (s *Store) Add(product Entry) error {
	s.mu.Lock()
	items := s.load()
	found := false
	for i := range items {
		if items[i].ProductID == product.ProductID {
			items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		product.Quantity = 1
		items = append(items, product)
	}
	return s.persist(items)
}

// SetQuantity replaces the matching line's quantity. Quantities below 1 are
// ignored; removal is explicit via Remove.
func (s *Store) SetQuantity(productID string, quantity int) error {
	if quantity < 1 {
		return nil
	}
	s.mu.Lock()
	items := s.load()
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
		}
	}
	return s.persist(items)
}

// Remove filters out the matching line.
func (s *Store) Remove(productID string) error {
	s.mu.Lock()
	items := s.load()
	kept := items[:0]
	for _, e := range items {
		if e.ProductID != productID {
			kept = append(kept, e)
		}
	}
	return s.persist(kept)
}

// Clear empties the cart.
func (s *Store) Clear() error {
	s.mu.Lock()
	if err := s.storage.Clear(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.notify()
	return nil
}

// load must be called with the lock held.
func (s *Store) load() []Entry {
	data, err := s.storage.Load()
	if err != nil || len(data) == 0 {
		return []Entry{}
	}
	var items []Entry
	if err := json.Unmarshal(data, &items); err != nil {
		return []Entry{}
	}
	return items
}

// persist saves items, releases the lock and notifies subscribers.
func (s *Store) persist(items []Entry) error {
	data, err := json.Marshal(items)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.storage.Save(data); err != nil {
		s.mu.Unlock()
		return err
	}
	s.notify()
	return nil
}

// notify must be called with the lock held; it releases it.
func (s *Store) notify() {
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}
