package messages

import (
	"codecity/internal/source"
)

type ErrorMsg struct {
	Err error
}

// SnapshotMsg carries the result of a reload.
type SnapshotMsg struct {
	Snapshot source.Snapshot
	Err      error
	// Changes is the number of file system changes that triggered the
	// reload; zero for manual reloads.
	Changes int
}
