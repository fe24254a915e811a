/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package scaling

import (
	"sort"
	"time"
)

// Event is a calendar entry whose summary names a scaling profile
type Event struct {
	Summary string
	Start   time.Time
	End     time.Time
}

// Duration is the time between the start and end of the event
func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// SortByDuration orders events shortest first so the most specific event
// comes first
func SortByDuration(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Duration() < events[j].Duration()
	})
}
