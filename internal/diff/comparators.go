/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package diff

import (
	"slices"

	"github.com/orien/stackmanager/internal/model"
)

type keyChange struct {
	key      string
	current  string
	proposed string
	change   ChangeType
}

// compareMaps reports every key added, removed or modified, sorted by key
func compareMaps(current, proposed map[string]string) []keyChange {
	keys := make([]string, 0, len(current)+len(proposed))
	for key := range current {
		keys = append(keys, key)
	}
	for key := range proposed {
		if _, ok := current[key]; !ok {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	var changes []keyChange
	for _, key := range keys {
		currentValue, currentExists := current[key]
		proposedValue, proposedExists := proposed[key]

		switch {
		case !currentExists:
			changes = append(changes, keyChange{key: key, proposed: proposedValue, change: ChangeTypeAdd})
		case !proposedExists:
			changes = append(changes, keyChange{key: key, current: currentValue, change: ChangeTypeRemove})
		case currentValue != proposedValue:
			changes = append(changes, keyChange{key: key, current: currentValue, proposed: proposedValue, change: ChangeTypeModify})
		}
	}
	return changes
}

// CompareParameters compares live and desired parameters
func CompareParameters(current, proposed model.Parameters) []ParameterDiff {
	var diffs []ParameterDiff
	for _, c := range compareMaps(current.Map(), proposed.Map()) {
		diffs = append(diffs, ParameterDiff{Key: c.key, CurrentValue: c.current, ProposedValue: c.proposed, ChangeType: c.change})
	}
	return diffs
}

// CompareTags compares live and desired tags
func CompareTags(current, proposed model.Tags) []TagDiff {
	var diffs []TagDiff
	for _, c := range compareMaps(current.Map(), proposed.Map()) {
		diffs = append(diffs, TagDiff{Key: c.key, CurrentValue: c.current, ProposedValue: c.proposed, ChangeType: c.change})
	}
	return diffs
}
