package feature

// Labels tracks a slice of features in the column ordering of the assembled
// feature row.
type Labels struct {
	labels []Feature
}

func NewLabels(labels []Feature) *Labels {
	return &Labels{labels: labels}
}

func (f *Labels) Len() int {
	if f == nil {
		return 0
	}
	return len(f.labels)
}

func (f *Labels) Labels() []Feature {
	labels := make([]Feature, len(f.labels))
	copy(labels, f.labels)
	return labels
}

// Strings returns the column names in order
func (f *Labels) Strings() []string {
	names := make([]string, 0, len(f.labels))
	for _, label := range f.labels {
		names = append(names, label.String())
	}
	return names
}
