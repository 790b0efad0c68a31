package cli

import (
	"fmt"
	"io"
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"todo/internal/app"
	"todo/internal/task"
	"todo/internal/view"
)

type opener func() (*session, error)

func newAddCmd(w io.Writer, open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			defer s.Close()

			out := s.ctrl.Dispatch(app.Add{Text: strings.Join(args, " ")})
			if !out.OK {
				return userError("%s", out.Notice)
			}
			if err := s.saved(); err != nil {
				return err
			}
			t, _ := s.store.Get(out.Fresh)
			fmt.Fprintf(w, "Added %d: %s\n", s.store.Len(), t.Text)
			return nil
		},
	}
}

func newListCmd(w io.Writer, open opener) *cobra.Command {
	var (
		filter string
		page   int
	)
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tasks one page at a time",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			defer s.Close()

			if filter != "" {
				f, err := view.ParseFilter(filter)
				if err != nil {
					return userError("%s", err)
				}
				s.ctrl.Dispatch(app.SetFilter{Filter: f})
			}
			s.ctrl.Dispatch(app.GotoPage{Page: page})
			printPage(w, s.ctrl.View(), s.store.Tasks(), s.ctrl.Filter())
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "all, active or completed (default from config)")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number, clamped to the last page")
	return cmd
}

func printPage(w io.Writer, p view.Page, all []task.Task, f view.Filter) {
	if p.Total == 0 {
		fmt.Fprintln(w, emptyText(f))
		return
	}
	for _, t := range p.Tasks {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		text := strings.ReplaceAll(t.Text, "\n", " ⏎ ")
		fmt.Fprintf(w, "%3d. %s %s  (%s)\n", position(all, t.ID), box, text, shortID(t.ID))
	}
	footer := countLabel(p.Total)
	if p.Paginated() {
		footer += fmt.Sprintf(", page %d/%d", p.Number, p.TotalPages)
	}
	fmt.Fprintln(w, footer)
}

func newDoneCmd(w io.Writer, open opener, completed bool) *cobra.Command {
	use, short, verb := "done <ref>", "Mark a task completed", "Completed"
	if !completed {
		use, short, verb = "undo <ref>", "Mark a task active again", "Reopened"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			defer s.Close()

			all := s.store.Tasks()
			t, err := ResolveRef(all, args[0])
			if err != nil {
				return userError("%s", err)
			}
			if out := s.ctrl.Dispatch(app.Toggle{ID: t.ID, Completed: completed}); !out.OK {
				return userError("%s", out.Notice)
			}
			if err := s.saved(); err != nil {
				return err
			}
			fmt.Fprintf(w, "%s %d: %s\n", verb, position(all, t.ID), t.Text)
			return nil
		},
	}
}

func newEditCmd(w io.Writer, open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <ref> <text...>",
		Short: "Replace the text of a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			defer s.Close()

			all := s.store.Tasks()
			t, err := ResolveRef(all, args[0])
			if err != nil {
				return userError("%s", err)
			}
			if out := s.ctrl.Dispatch(app.Edit{ID: t.ID}); !out.OK {
				return userError("%s", out.Notice)
			}
			if out := s.ctrl.Dispatch(app.Save{Text: strings.Join(args[1:], " ")}); !out.OK {
				return userError("%s", out.Notice)
			}
			if err := s.saved(); err != nil {
				return err
			}
			updated, _ := s.store.Get(t.ID)
			fmt.Fprintf(w, "Updated %d: %s\n", position(all, t.ID), updated.Text)
			return nil
		},
	}
}

func newRemoveCmd(w io.Writer, open opener) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <ref>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			defer s.Close()

			all := s.store.Tasks()
			t, err := ResolveRef(all, args[0])
			if err != nil {
				return userError("%s", err)
			}
			s.ctrl.Dispatch(app.Delete{ID: t.ID})
			if err := s.saved(); err != nil {
				return err
			}
			fmt.Fprintf(w, "Deleted %d: %s\n", position(all, t.ID), t.Text)
			return nil
		},
	}
}

func newClearCmd(w io.Writer, open opener) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every task matching a filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := view.ParseFilter(filter)
			if err != nil {
				return userError("%s", err)
			}

			s, err := open()
			if err != nil {
				return err
			}
			defer s.Close()

			s.ctrl.Dispatch(app.SetFilter{Filter: f})
			out := s.ctrl.Dispatch(app.ClearFiltered{})
			if !out.OK {
				return userError("%s", out.Notice)
			}
			if err := s.saved(); err != nil {
				return err
			}
			fmt.Fprintf(w, "Deleted %s\n", countLabel(out.Removed))
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", string(view.FilterCompleted), "all, active or completed")
	return cmd
}

func position(tasks []task.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i + 1
		}
	}
	return 0
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func countLabel(n int) string {
	if n == 1 {
		return "1 task"
	}
	return humanize.Comma(int64(n)) + " tasks"
}

func emptyText(f view.Filter) string {
	switch f {
	case view.FilterActive:
		return "Nothing left to do."
	case view.FilterCompleted:
		return "No completed tasks."
	default:
		return "No tasks yet."
	}
}
