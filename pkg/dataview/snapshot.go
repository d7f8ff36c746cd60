package dataview

// Snapshot is everything a single render consumes.
//
// A nil Rows slice means the host could not deliver the rows (the snapshot
// expired); an empty non-nil slice is a valid, empty diagram.
type Snapshot struct {
	Rows        []Row      `json:"-"`
	Hierarchy   *Hierarchy `json:"hierarchy"`
	Errors      []string   `json:"errors,omitempty"`
	Width       float64    `json:"width"`
	Height      float64    `json:"height"`
	MeasureName string     `json:"measure_name"`
}

// Levels returns the hierarchy levels, or nil without a hierarchy.
func (s *Snapshot) Levels() []Level {
	if s.Hierarchy == nil {
		return nil
	}
	return s.Hierarchy.Levels
}

// EnsureHierarchy derives the hierarchy from rows when none was supplied
// but level names are known.
func (s *Snapshot) EnsureHierarchy(levels []Level) {
	if s.Hierarchy != nil && s.Hierarchy.Root != nil {
		return
	}
	if s.Hierarchy != nil && len(levels) == 0 {
		levels = s.Hierarchy.Levels
	}
	s.Hierarchy = BuildHierarchy(levels, s.Rows)
}
