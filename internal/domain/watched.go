package domain

// WatchedSet is a deduplicated set of item ids that remembers insertion order.
type WatchedSet struct {
	ids   []ItemID
	index map[ItemID]struct{}
}

func NewWatchedSet(ids ...ItemID) *WatchedSet {
	s := &WatchedSet{index: make(map[ItemID]struct{}, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add reports whether id was not already present.
func (s *WatchedSet) Add(id ItemID) bool {
	if _, ok := s.index[id]; ok {
		return false
	}
	s.index[id] = struct{}{}
	s.ids = append(s.ids, id)
	return true
}

func (s *WatchedSet) Contains(id ItemID) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[id]
	return ok
}

func (s *WatchedSet) Items() []ItemID {
	if s == nil {
		return nil
	}
	return s.ids
}

func (s *WatchedSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}
