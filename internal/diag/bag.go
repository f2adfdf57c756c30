package diag

import "slices"

// Bag collects diagnostics up to a limit; limit <= 0 means unbounded.
type Bag struct {
	items []Diagnostic
	limit int
}

func NewBag(limit int) *Bag {
	return &Bag{limit: limit}
}

// Add appends d unless the limit is reached and reports whether it did.
func (b *Bag) Add(d Diagnostic) bool {
	if b.full() {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) full() bool { return b.limit > 0 && len(b.items) >= b.limit }

// Extend appends diags unconditionally; the limit grows to fit them.
// Earlier stages' diagnostics are never dropped this way.
func (b *Bag) Extend(diags []Diagnostic) {
	b.items = append(b.items, diags...)
	if b.limit > 0 {
		b.limit = max(b.limit, len(b.items))
	}
}

func (b *Bag) Len() int { return len(b.items) }

// Items aliases the bag's storage; callers must not modify it.
func (b *Bag) Items() []Diagnostic { return b.items }

func (b *Bag) HasErrors() bool { return !OK(b.items) }

func (b *Bag) HasWarnings() bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= SevWarning })
}

// Sort orders by primary start offset. Stable, so diagnostics at one
// offset keep emission order.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return int(x.Primary.Start.Offset) - int(y.Primary.Start.Offset)
	})
}
