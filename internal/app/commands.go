package app

import "todo/internal/view"

// Command is one user action. Each type carries its own arguments so the
// controller never reads shared state set up by a previous event.
type Command interface {
	apply(c *Controller) Outcome
}

type Add struct{ Text string }

type Delete struct{ ID string }

type Toggle struct {
	ID        string
	Completed bool
}

// Edit switches the task into edit mode.
type Edit struct{ ID string }

// Save commits the edited text of the task in edit mode.
type Save struct{ Text string }

// Cancel leaves edit mode without saving.
type Cancel struct{}

type SetFilter struct{ Filter view.Filter }

// ClearFiltered deletes every task matching the active filter.
type ClearFiltered struct{}

type GotoPage struct{ Page int }

type PrevPage struct{}

type NextPage struct{}

func (a Add) apply(c *Controller) Outcome         { return c.add(a.Text) }
func (d Delete) apply(c *Controller) Outcome      { return c.remove(d.ID) }
func (t Toggle) apply(c *Controller) Outcome      { return c.toggle(t.ID, t.Completed) }
func (e Edit) apply(c *Controller) Outcome        { return c.startEdit(e.ID) }
func (s Save) apply(c *Controller) Outcome        { return c.saveEdit(s.Text) }
func (Cancel) apply(c *Controller) Outcome        { return c.cancelEdit() }
func (f SetFilter) apply(c *Controller) Outcome   { return c.setFilter(f.Filter) }
func (ClearFiltered) apply(c *Controller) Outcome { return c.clearFiltered() }
func (g GotoPage) apply(c *Controller) Outcome    { return c.gotoPage(g.Page) }
func (PrevPage) apply(c *Controller) Outcome      { return c.gotoPage(c.page - 1) }
func (NextPage) apply(c *Controller) Outcome      { return c.gotoPage(c.page + 1) }
