package title

// Override marks a target-catalog title that must never be flagged for
// removal even without a source-catalog counterpart.
type Override struct {
	TargetTitle string `yaml:"target_title"`
	Reason      string `yaml:"reason,omitempty"`
}

// OverrideSet is a case-insensitive membership set of exempted titles.
type OverrideSet struct {
	members map[string]struct{}
}

// NewOverrideSet builds the exemption set from the override list.
func NewOverrideSet(overrides []Override) *OverrideSet {
	s := &OverrideSet{members: make(map[string]struct{}, len(overrides))}
	for _, o := range overrides {
		if o.TargetTitle == "" {
			continue
		}
		s.members[foldKey(o.TargetTitle)] = struct{}{}
	}
	return s
}

// IsExempt reports whether the target title is exempt from removal.
func (s *OverrideSet) IsExempt(targetTitle string) bool {
	_, ok := s.members[foldKey(targetTitle)]
	return ok
}

// Len reports how many titles are exempted.
func (s *OverrideSet) Len() int {
	return len(s.members)
}
