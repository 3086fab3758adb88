package board

import "errors"

// ErrIllegalMove indicates a UCI move string does not correspond to any move in
// the current legal move list.
var ErrIllegalMove = errors.New("illegal move")
