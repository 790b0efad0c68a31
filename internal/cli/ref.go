package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"todo/internal/task"
)

var ErrRefRequired = errors.New("task reference required")

// ResolveRef finds the task named by ref. An all-digit ref is a 1-based
// position in the full list; anything else must be a unique id prefix.
func ResolveRef(tasks []task.Task, ref string) (task.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return task.Task{}, ErrRefRequired
	}

	if isAllDigits(ref) {
		n, err := strconv.Atoi(ref)
		if err != nil || n < 1 || n > len(tasks) {
			return task.Task{}, fmt.Errorf("no task at position %s (have %d)", ref, len(tasks))
		}
		return tasks[n-1], nil
	}

	var match []task.Task
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, ref) {
			match = append(match, t)
		}
	}
	switch len(match) {
	case 0:
		return task.Task{}, fmt.Errorf("no task matches %q", ref)
	case 1:
		return match[0], nil
	default:
		return task.Task{}, fmt.Errorf("ambiguous task reference %q matches %d tasks", ref, len(match))
	}
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
