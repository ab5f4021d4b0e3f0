package public

import "errors"

// Fatal at process startup: sync.log/prog.log could not be opened for
// a reason other than absence.
var ErrConfiguration = errors.New("[sync] configuration failure opening log files")

// Fatal during replication: fewer than 4 bytes available for a
// record's length prefix.
var ErrShortRead = errors.New("[sync] short read on record length prefix")

// Fatal during replication: fewer payload bytes followed the length
// prefix than it declared.
var ErrIncompleteRecord = errors.New("[sync] incomplete record, payload shorter than declared length")

// Fatal during startup: current_offset < sync_offset.
var ErrInvariantViolation = errors.New("[sync] current_offset is behind sync_offset at startup")

// Returned by the RPC collaborator on a failed or timed-out attempt.
var ErrRPCFailed = errors.New("[sync] AppendLog RPC attempt failed")
