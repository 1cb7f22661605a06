// ABOUTME: Typed failures surfaced by the bird store.
// ABOUTME: PersistError wraps I/O and encoding causes; ErrCorruptJournal marks unreadable JSON.
package storage

import (
	"errors"
	"fmt"
)

// ErrCorruptJournal is wrapped by the load diagnostic when the backing file is not valid JSON.
var ErrCorruptJournal = errors.New("journal file is corrupt")

// PersistError reports a failed load or save of the backing file.
type PersistError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to %s journal %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
