package curator

import "time"

// ChangeKind classifies a change-log entry.
type ChangeKind string

const (
	ChangeMove    ChangeKind = "move"
	ChangeSwap    ChangeKind = "swap"
	ChangeReplace ChangeKind = "replace"
	ChangeDrop    ChangeKind = "drop"
	ChangeUnuse   ChangeKind = "unuse"
	ChangeRestore ChangeKind = "restore"
	ChangeMain    ChangeKind = "swap_main"
	ChangePromote ChangeKind = "promote"
	ChangeDemote  ChangeKind = "demote"
	ChangeCombine ChangeKind = "combine"
	ChangeTheme   ChangeKind = "rename_theme"
	ChangeComic   ChangeKind = "set_comic"
	ChangeRegroup ChangeKind = "regroup"
	ChangeRewrite ChangeKind = "rewrite"
)

// Change is one entry of the append-only change log.
type Change struct {
	Seq     int        `json:"seq"`
	Kind    ChangeKind `json:"kind"`
	Day     int        `json:"day,omitempty"`
	StoryID string     `json:"story_id,omitempty"`
	Message string     `json:"message"`
	At      time.Time  `json:"at"`
}

// EventKind distinguishes recorded changes from warnings.
type EventKind string

const (
	EventChange  EventKind = "change"
	EventWarning EventKind = "warning"
)

// Event is delivered to subscribers for every change and warning.
type Event struct {
	Kind    EventKind
	Day     int
	Message string
	Change  *Change // set for EventChange
}
