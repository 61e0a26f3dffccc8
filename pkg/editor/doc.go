// Package editor implements the pending/committed state machine that
// buffers permission edits before they are persisted.
//
// A Session moves through idle -> editing -> saving -> committed, with
// failed as the retained-buffer error state. Collaborating UI surfaces
// receive preview notifications on every pending mutation but only a
// successful Save changes what the rest of the system observes.
package editor
