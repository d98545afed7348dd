package catalog

// PageSize is how many products one page shows.
const PageSize = 6

// Pager tracks how much of the filtered list is visible. Any new filter
// operation collapses it back to one page; the cursor never shrinks
// otherwise.
type Pager struct {
	visible  int
	expanded bool
}

// NewPager starts collapsed at one page.
func NewPager() Pager {
	return Pager{visible: PageSize}
}

// Reset returns to one collapsed page. Called on every filter change.
func (p *Pager) Reset() {
	p.visible = PageSize
	p.expanded = false
}

// ShowMore reveals one more page, saturating at total. A no-op once
// everything is already visible.
func (p *Pager) ShowMore(total int) {
	if p.expanded || p.visible >= total {
		return
	}
	p.visible += PageSize
	if p.visible > total {
		p.visible = total
	}
}

// ShowAll expands to the full filtered list.
func (p *Pager) ShowAll() {
	p.expanded = true
}

// Visible returns how many of total items to render.
func (p Pager) Visible(total int) int {
	if p.expanded || p.visible > total {
		return total
	}
	return p.visible
}

// HasMore reports whether a show-more control should render.
func (p Pager) HasMore(total int) bool {
	return !p.expanded && p.visible < total
}
