package checkout

import "sync"

// CartLine is one line of the active checkout.
type CartLine struct {
	MerchandiseID string `json:"merchandiseId"`
	Title         string `json:"title,omitempty"`
	Quantity      int    `json:"quantity"`
}

// Selection is the set of merchandise ids the shopper has checked. Insertion order is kept.
type Selection struct {
	mu  sync.Mutex
	ids []string
	set map[string]struct{}
}

func NewSelection() *Selection {
	return &Selection{set: make(map[string]struct{})}
}

// Toggle removes variantID if selected, otherwise adds it. It reports whether
// the id is selected afterwards.
func (s *Selection) Toggle(variantID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.set[variantID]; ok {
		delete(s.set, variantID)
		for i, id := range s.ids {
			if id == variantID {
				s.ids = append(s.ids[:i], s.ids[i+1:]...)
				break
			}
		}
		return false
	}
	s.set[variantID] = struct{}{}
	s.ids = append(s.ids, variantID)
	return true
}

func (s *Selection) Contains(variantID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.set[variantID]
	return ok
}

func (s *Selection) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// Snapshot returns a copy of the selected ids in the order they were checked.
func (s *Selection) Snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = nil
	s.set = make(map[string]struct{})
}

// Prune drops selected ids that are no longer lines of the cart.
func (s *Selection) Prune(lines []CartLine) {
	inCart := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		inCart[line.MerchandiseID] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.ids[:0]
	for _, id := range s.ids {
		if _, ok := inCart[id]; ok {
			kept = append(kept, id)
			continue
		}
		delete(s.set, id)
	}
	s.ids = kept
}
