package types

// ResourceSet holds one counter per resource kind. Counters are never
// negative; Subtract reports failure instead of going below zero.
type ResourceSet struct {
	Clay  int `json:"clay"`
	Ore   int `json:"ore"`
	Sheep int `json:"sheep"`
	Wheat int `json:"wheat"`
	Wood  int `json:"wood"`
}

// NewResourceSet creates a ResourceSet with the given counts, in the
// canonical clay, ore, sheep, wheat, wood order.
func NewResourceSet(clay, ore, sheep, wheat, wood int) ResourceSet {
	return ResourceSet{
		Clay:  clay,
		Ore:   ore,
		Sheep: sheep,
		Wheat: wheat,
		Wood:  wood,
	}
}

// Add adds the counts of other to r.
func (r *ResourceSet) Add(other ResourceSet) {
	r.Clay += other.Clay
	r.Ore += other.Ore
	r.Sheep += other.Sheep
	r.Wheat += other.Wheat
	r.Wood += other.Wood
}

// Subtract removes the counts of other from r. It returns false and leaves
// r unchanged if any counter would go negative.
func (r *ResourceSet) Subtract(other ResourceSet) bool {
	if r.Clay < other.Clay || r.Ore < other.Ore || r.Sheep < other.Sheep ||
		r.Wheat < other.Wheat || r.Wood < other.Wood {
		return false
	}
	r.Clay -= other.Clay
	r.Ore -= other.Ore
	r.Sheep -= other.Sheep
	r.Wheat -= other.Wheat
	r.Wood -= other.Wood
	return true
}

// Total returns the sum of all counters.
func (r ResourceSet) Total() int {
	return r.Clay + r.Ore + r.Sheep + r.Wheat + r.Wood
}

// IsZero reports whether every counter is zero.
func (r ResourceSet) IsZero() bool {
	return r == ResourceSet{}
}
