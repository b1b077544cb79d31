// Package reconcile corrects mislabeled assignee names inside a caller
// supplied record scope.
package reconcile

import (
	"fmt"

	"github.com/erp/backoffice/internal/domain/record"
	"github.com/erp/backoffice/internal/domain/shared"
)

// MergeResult lists the records a rename would touch. The caller's
// persistence layer applies the rename to Targets in one transaction.
type MergeResult struct {
	OldName     string       `json:"old_name"`
	NewName     string       `json:"new_name"`
	AffectedIDs []record.ID  `json:"affected_ids"`
	Targets     []record.Ref `json:"targets"`
	// Unaddressable counts matching records without a usable ID. They are
	// reported but cannot be renamed.
	Unaddressable int `json:"unaddressable"`
}

// Count returns the number of records the rename will change
func (r *MergeResult) Count() int {
	return len(r.Targets)
}

// MergeAssigneeLabel finds the records in scope whose assignee label matches
// oldName and reports them for renaming to newName.
//
// Labels are compared by their normalized key, so "ali " matches "Ali". The
// scope is never widened and never modified. AffectedIDs keeps scope order
// and lists each ID once even when kinds share an ID; Targets keeps one entry
// per (kind, ID).
//
// Names that differ only in case recase the label: "ali" to "Ali" targets the
// matching records not already shown as "Ali". Names that differ only in
// whitespace are the same label and are rejected.
func MergeAssigneeLabel(scope []record.BusinessRecord, oldName, newName string) (*MergeResult, error) {
	oldKey := record.NormalizeAssignee(oldName)
	if oldKey.IsEmpty() {
		return nil, shared.NewValidationError("old name is required")
	}
	if record.NormalizeAssignee(newName).IsEmpty() {
		return nil, shared.NewValidationError("new name is required")
	}

	result := &MergeResult{
		OldName: record.DisplayAssignee(oldName),
		NewName: record.DisplayAssignee(newName),
	}
	if result.OldName == result.NewName {
		return nil, shared.NewValidationError("old and new name must differ")
	}

	seenIDs := make(map[record.ID]struct{})
	for _, r := range record.Normalize(scope) {
		if record.AssigneeOf(r) != oldKey {
			continue
		}
		if record.DisplayAssignee(r.Meta().AssigneeName) == result.NewName {
			continue
		}
		id := r.Meta().ID
		if !id.Known() {
			result.Unaddressable++
			continue
		}
		result.Targets = append(result.Targets, record.RefOf(r))
		if _, ok := seenIDs[id]; !ok {
			seenIDs[id] = struct{}{}
			result.AffectedIDs = append(result.AffectedIDs, id)
		}
	}

	if len(result.Targets) == 0 {
		return nil, shared.NewNotFoundError(fmt.Sprintf("no records assigned to %q in scope", result.OldName))
	}
	return result, nil
}
