package domain

import "time"

// JournalVersion is the current layout of the private journal.
const JournalVersion = 1

// Journal is the private, encrypted record kept inside a learner's progress
// row: the ordered history of traversals and free-form preferences.
type Journal struct {
	Version     int               `json:"v"`
	Events      []TraversalEvent  `json:"events"`
	Preferences map[string]string `json:"preferences"`
}

// TraversalEvent records one successful edge traversal.
type TraversalEvent struct {
	EdgeID     int64     `json:"edge_id"`
	From       int64     `json:"from"`
	To         int64     `json:"to"`
	At         time.Time `json:"at"`
	CreditGain int64     `json:"credit_gain"`
}

// NewJournal returns an empty journal at the current version.
func NewJournal() Journal {
	return Journal{
		Version:     JournalVersion,
		Events:      []TraversalEvent{},
		Preferences: map[string]string{},
	}
}

// Append adds ev to the end of the history.
func (j *Journal) Append(ev TraversalEvent) {
	j.Events = append(j.Events, ev)
}

// Visited returns the set of nodes reached by a traversal.
func (j *Journal) Visited() map[int64]struct{} {
	visited := make(map[int64]struct{}, len(j.Events))
	for _, ev := range j.Events {
		visited[ev.To] = struct{}{}
	}
	return visited
}

// SetPreference stores a preference, allocating the map if needed.
func (j *Journal) SetPreference(name, value string) {
	if j.Preferences == nil {
		j.Preferences = map[string]string{}
	}
	j.Preferences[name] = value
}
