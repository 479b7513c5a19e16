// SPDX-License-Identifier: EPL-2.0

package midi

import "errors"

var (
	ErrNotMidiFile = errors.New("not a standard midi file")

	// ErrNoNotes is returned for files without a single playable note.
	ErrNoNotes = errors.New("midi file contains no notes")
)
