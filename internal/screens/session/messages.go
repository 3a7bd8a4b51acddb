package session

// snapshotSavedMsg is sent once the quit-time snapshot has been written.
type snapshotSavedMsg struct {
	Err error
}

// snapshotClearedMsg is sent once the snapshot of a finished session has been
// removed.
type snapshotClearedMsg struct {
	Err error
}
