package entity

// IDSet holds entity ids with set semantics while preserving insertion
// order, so persisted arrays stay stable across saves. Membership is
// enforced by the type itself rather than at call sites.
type IDSet []string

// Contains reports whether id is a member of the set.
func (s IDSet) Contains(id string) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Add appends id and returns true, or returns false if id is already present.
func (s *IDSet) Add(id string) bool {
	if s.Contains(id) {
		return false
	}
	*s = append(*s, id)
	return true
}

// Remove deletes id and returns true, or returns false if id is absent.
func (s *IDSet) Remove(id string) bool {
	for i, v := range *s {
		if v == id {
			*s = append((*s)[:i], (*s)[i+1:]...)
			return true
		}
	}
	return false
}
