package title

// Alias maps a title in the source catalog's vocabulary to its
// equivalent in the target catalog's vocabulary.
type Alias struct {
	SourceTitle string `yaml:"source_title"`
	TargetTitle string `yaml:"target_title"`
	Note        string `yaml:"note,omitempty"`
}

// Mapper is a bidirectional, case-insensitive title lookup built once
// from a flat alias list. Lookups that miss fall back to the input
// title unchanged; hits return the table's original casing.
type Mapper struct {
	sourceToTarget map[string]string
	targetToSource map[string]string
}

// NewMapper builds both lookup tables from the alias list. A nil or
// empty list yields an identity mapper.
func NewMapper(aliases []Alias) *Mapper {
	m := &Mapper{
		sourceToTarget: make(map[string]string, len(aliases)),
		targetToSource: make(map[string]string, len(aliases)),
	}
	for _, a := range aliases {
		if a.SourceTitle == "" || a.TargetTitle == "" {
			continue
		}
		m.sourceToTarget[foldKey(a.SourceTitle)] = a.TargetTitle
		m.targetToSource[foldKey(a.TargetTitle)] = a.SourceTitle
	}
	return m
}

// SourceToTarget returns the target-catalog spelling of a source title,
// or the title unchanged when no alias exists.
func (m *Mapper) SourceToTarget(t string) string {
	if mapped, ok := m.sourceToTarget[foldKey(t)]; ok {
		return mapped
	}
	return t
}

// TargetToSource returns the source-catalog spelling of a target title,
// or the title unchanged when no alias exists.
func (m *Mapper) TargetToSource(t string) string {
	if mapped, ok := m.targetToSource[foldKey(t)]; ok {
		return mapped
	}
	return t
}

// Len reports how many aliases the mapper carries.
func (m *Mapper) Len() int {
	return len(m.sourceToTarget)
}
