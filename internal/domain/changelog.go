package domain

import (
	"fmt"
	"strings"
)

// Field labels used in history descriptions. The rendered text is stored
// verbatim in project_history and shown to users as-is.
const (
	labelProjectName     = "프로젝트명 변경"
	labelProjectProgress = "진행률 변경"
	labelStatus          = "상태 변경"
	labelTaskName        = "태스크명 변경"
)

// fieldDiff is one entry of the declarative comparator list: a label plus
// the display forms of the persisted and requested values. Comparison is
// on the rendered display form, which is semantic equality for the tracked
// field kinds (string, enum-by-name, decimal with unit).
type fieldDiff struct {
	label   string
	before  string
	after   string
	tracked bool // false when the request leaves the field unset
}

// ChangeSet is the result of diffing the tracked fields of a resource
// against a mutation request. An empty ChangeSet means the mutation is a
// no-op for audit purposes and must not produce a history entry.
type ChangeSet struct {
	clauses []string
}

func newChangeSet(fields []fieldDiff) *ChangeSet {
	cs := &ChangeSet{}
	for _, f := range fields {
		if !f.tracked || f.before == f.after {
			continue
		}
		cs.clauses = append(cs.clauses, fmt.Sprintf("%s: %s → %s; ", f.label, f.before, f.after))
	}
	return cs
}

// Empty reports whether no tracked field changed.
func (cs *ChangeSet) Empty() bool { return len(cs.clauses) == 0 }

// Description renders the clauses in field order, e.g.
// "진행률 변경: 40% → 55%; 상태 변경: IN_PROGRESS → COMPLETED; ".
func (cs *ChangeSet) Description() string { return strings.Join(cs.clauses, "") }

// ProjectChanges diffs the tracked project fields (name, progress, status)
// between persisted state and a mutation request. Nil request fields are
// treated as "leave unchanged". The tracked set is intentionally narrow;
// untracked fields are applied but not audited.
func ProjectChanges(before *Project, name *string, progress *int, status *ProjectStatus) *ChangeSet {
	fields := []fieldDiff{
		{label: labelProjectName, tracked: name != nil, before: before.Name},
		{label: labelProjectProgress, tracked: progress != nil, before: percent(before.Progress)},
		{label: labelStatus, tracked: status != nil, before: string(before.Status)},
	}
	if name != nil {
		fields[0].after = *name
	}
	if progress != nil {
		fields[1].after = percent(*progress)
	}
	if status != nil {
		fields[2].after = string(*status)
	}
	return newChangeSet(fields)
}

// TaskChanges diffs the tracked task fields (name, status).
func TaskChanges(before *Task, name *string, status *TaskStatus) *ChangeSet {
	fields := []fieldDiff{
		{label: labelTaskName, tracked: name != nil, before: before.Name},
		{label: labelStatus, tracked: status != nil, before: string(before.Status)},
	}
	if name != nil {
		fields[0].after = *name
	}
	if status != nil {
		fields[1].after = string(*status)
	}
	return newChangeSet(fields)
}

func percent(v int) string { return fmt.Sprintf("%d%%", v) }
