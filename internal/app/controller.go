// Package app owns the transient session state of the task list UI and
// turns user commands into store mutations.
package app

import (
	"errors"
	"fmt"

	"todo/internal/logging"
	"todo/internal/task"
	"todo/internal/view"
)

const (
	msgEmptyTask      = "Task cannot be empty"
	msgNothingToClear = "No tasks to delete"
	msgNotFound       = "Task no longer exists"
)

// Outcome tells the presentation layer what a command changed. Notice is
// set when a transient message was raised, Fresh names a task that was
// just added and Removed counts tasks deleted by ClearFiltered.
type Outcome struct {
	OK       bool
	Notice   string
	NoticeID int
	Fresh    string
	Removed  int
}

// Controller is not safe for concurrent use; it expects one event loop.
type Controller struct {
	store    *task.Store
	pageSize int
	log      *logging.Logger

	filter   view.Filter
	page     int
	editing  string
	notice   string
	noticeID int
	fresh    string
}

type Option func(*Controller)

func WithPageSize(n int) Option {
	return func(c *Controller) { c.pageSize = n }
}

func WithFilter(f view.Filter) Option {
	return func(c *Controller) { c.filter = f }
}

func WithLogger(l *logging.Logger) Option {
	return func(c *Controller) { c.log = l.WithComponent("app") }
}

func New(store *task.Store, opts ...Option) *Controller {
	c := &Controller{
		store:    store,
		pageSize: view.DefaultPageSize,
		filter:   view.FilterAll,
		page:     1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dispatch runs one command to completion.
func (c *Controller) Dispatch(cmd Command) Outcome {
	out := cmd.apply(c)
	c.log.Debug("dispatch", map[string]any{"command": fmt.Sprintf("%T", cmd), "ok": out.OK})
	return out
}

// View derives the current page and adopts its clamped page number.
func (c *Controller) View() view.Page {
	p := view.Derive(c.store.Tasks(), c.filter, c.page, c.pageSize)
	c.page = p.Number
	return p
}

func (c *Controller) Store() *task.Store  { return c.store }
func (c *Controller) Filter() view.Filter { return c.filter }
func (c *Controller) Page() int           { return c.page }
func (c *Controller) PageSize() int       { return c.pageSize }

// Editing returns the id of the task in edit mode.
func (c *Controller) Editing() (string, bool) { return c.editing, c.editing != "" }

func (c *Controller) Notice() string { return c.notice }

// Fresh returns the id of the task carrying the entry highlight.
func (c *Controller) Fresh() string { return c.fresh }

// ExpireNotice clears the notice if id still names the current one.
func (c *Controller) ExpireNotice(id int) {
	if id == c.noticeID {
		c.notice = ""
	}
}

// ExpireFresh drops the entry highlight for id.
func (c *Controller) ExpireFresh(id string) {
	if id == c.fresh {
		c.fresh = ""
	}
}

func (c *Controller) raise(msg string) Outcome {
	c.noticeID++
	c.notice = msg
	return Outcome{Notice: msg, NoticeID: c.noticeID}
}

func (c *Controller) add(text string) Outcome {
	t, err := c.store.Add(text)
	if err != nil {
		return c.fail(err)
	}
	c.page = 1
	c.fresh = t.ID
	return Outcome{OK: true, Fresh: t.ID}
}

func (c *Controller) remove(id string) Outcome {
	c.store.Remove(id)
	if c.editing == id {
		c.editing = ""
	}
	return Outcome{OK: true}
}

func (c *Controller) toggle(id string, completed bool) Outcome {
	if err := c.store.SetCompleted(id, completed); err != nil {
		return c.fail(err)
	}
	return Outcome{OK: true}
}

func (c *Controller) startEdit(id string) Outcome {
	if _, ok := c.store.Get(id); !ok {
		return c.raise(msgNotFound)
	}
	c.editing = id
	return Outcome{OK: true}
}

func (c *Controller) saveEdit(text string) Outcome {
	if c.editing == "" {
		return Outcome{}
	}
	if err := c.store.UpdateText(c.editing, text); err != nil {
		if errors.Is(err, task.ErrNotFound) {
			c.editing = ""
		}
		return c.fail(err)
	}
	c.editing = ""
	return Outcome{OK: true}
}

func (c *Controller) cancelEdit() Outcome {
	c.editing = ""
	return Outcome{OK: true}
}

func (c *Controller) setFilter(f view.Filter) Outcome {
	c.filter = f
	c.page = 1
	return Outcome{OK: true}
}

func (c *Controller) clearFiltered() Outcome {
	n, err := c.store.Clear(c.filter.Match)
	if err != nil {
		return c.fail(err)
	}
	if id, ok := c.Editing(); ok {
		if _, exists := c.store.Get(id); !exists {
			c.editing = ""
		}
	}
	c.View()
	return Outcome{OK: true, Removed: n}
}

func (c *Controller) gotoPage(n int) Outcome {
	c.page = n
	c.View()
	return Outcome{OK: true}
}

// fail maps store errors to notices. They stop here and are not logged.
func (c *Controller) fail(err error) Outcome {
	switch {
	case task.IsValidation(err):
		return c.raise(msgEmptyTask)
	case errors.Is(err, task.ErrEmptySelection):
		return c.raise(msgNothingToClear)
	case errors.Is(err, task.ErrNotFound):
		return c.raise(msgNotFound)
	default:
		return c.raise(err.Error())
	}
}
