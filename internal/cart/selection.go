package cart

// Selection is the set of line ids picked for checkout. It is never persisted.
type Selection struct {
	ids map[string]struct{}
}

func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Toggle flips id and reports whether it is now selected.
func (s *Selection) Toggle(id string) bool {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// SelectAll selects exactly ids when on, and nothing otherwise.
func (s *Selection) SelectAll(ids []string, on bool) {
	s.ids = make(map[string]struct{}, len(ids))
	if !on {
		return
	}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
}

func (s *Selection) Remove(id string) {
	delete(s.ids, id)
}

// Prune drops every selected id that is not in ids.
func (s *Selection) Prune(ids []string) {
	live := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		live[id] = struct{}{}
	}
	for id := range s.ids {
		if _, ok := live[id]; !ok {
			delete(s.ids, id)
		}
	}
}

func (s *Selection) Has(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids in the order they appear in order.
func (s *Selection) IDs(order []string) []string {
	out := make([]string, 0, len(s.ids))
	for _, id := range order {
		if s.Has(id) {
			out = append(out, id)
		}
	}
	return out
}
