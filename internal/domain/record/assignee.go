package record

import (
	"strings"

	"golang.org/x/text/cases"
)

// AssigneeKey is the normalized identity of a free-text assignee label.
//
// Labels are typed by hand upstream, so "Ali", "ali " and "ALI" all refer to
// the same person. The key is built by trimming, collapsing internal
// whitespace runs to a single space and applying Unicode case folding.
// The empty key means the record is unassigned.
type AssigneeKey string

// NormalizeAssignee returns the identity key for a raw assignee label
func NormalizeAssignee(name string) AssigneeKey {
	collapsed := strings.Join(strings.Fields(name), " ")
	if collapsed == "" {
		return ""
	}
	return AssigneeKey(cases.Fold().String(collapsed))
}

// DisplayAssignee returns the label as it should be shown: trimmed, with
// whitespace runs collapsed, case preserved.
func DisplayAssignee(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// String returns the string representation of AssigneeKey
func (k AssigneeKey) String() string {
	return string(k)
}

// IsEmpty reports whether the key denotes an unassigned record
func (k AssigneeKey) IsEmpty() bool {
	return k == ""
}

// AssigneeOf returns the normalized assignee key of a record
func AssigneeOf(r BusinessRecord) AssigneeKey {
	return NormalizeAssignee(r.Meta().AssigneeName)
}
