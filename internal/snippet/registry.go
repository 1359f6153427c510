package snippet

// Registry is the ordered set of snippets discovered on one page. It is
// fixed at construction.
type Registry struct {
	snippets []*Snippet
}

// NewRegistry builds one Snippet per descriptor, in the order given.
func NewRegistry(descs []Descriptor, opts ...Option) *Registry {
	r := &Registry{snippets: make([]*Snippet, 0, len(descs))}
	for _, d := range descs {
		r.snippets = append(r.snippets, New(d, opts...))
	}
	return r
}

// Len returns the number of snippets.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.snippets)
}

// At returns the i-th snippet, or nil when i is out of range.
func (r *Registry) At(i int) *Snippet {
	if r == nil || i < 0 || i >= len(r.snippets) {
		return nil
	}
	return r.snippets[i]
}

// Snippets returns a copy of the snippet slice.
func (r *Registry) Snippets() []*Snippet {
	if r == nil {
		return nil
	}
	out := make([]*Snippet, len(r.snippets))
	copy(out, r.snippets)
	return out
}

// CountDirty returns how many snippets have unsaved edits.
func (r *Registry) CountDirty() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, s := range r.snippets {
		if s.IsDirty() {
			n++
		}
	}
	return n
}

// DirtyIndices returns the positions of dirty snippets.
func (r *Registry) DirtyIndices() []int {
	if r == nil {
		return nil
	}
	var out []int
	for i, s := range r.snippets {
		if s.IsDirty() {
			out = append(out, i)
		}
	}
	return out
}

// InFlight returns how many snippets have a submission pending.
func (r *Registry) InFlight() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, s := range r.snippets {
		if s.Pending() {
			n++
		}
	}
	return n
}
