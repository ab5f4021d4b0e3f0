package sync

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jameswei2019/bfs/public"
)

const (
	progressFileName = "prog.log"
	progressTmpName  = "prog.tmp"
)

// ProgressStore persists sync_offset to prog.log via a
// write-temp-then-rename protocol: a crash mid-write leaves prog.tmp
// half-written and prog.log untouched; a crash after the rename is
// safe by construction, since rename is atomic on the same
// filesystem.
type ProgressStore struct {
	dir string
}

func NewProgressStore(dir string) *ProgressStore {
	return &ProgressStore{dir: dir}
}

// Load returns the last snapshotted sync_offset, or 0 if prog.log is
// absent. Any other error opening the file is a ConfigurationFailure
// and is returned to the caller, who is expected to treat it as
// fatal.
func (p *ProgressStore) Load() (uint64, error) {
	path := filepath.Join(p.dir, progressFileName)
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: open %s: %v", public.ErrConfiguration, path, err)
	}
	defer file.Close()

	var buf [8]byte
	n, err := file.Read(buf[:])
	if err != nil && n == 0 {
		// Empty or unreadable file behaves like "absent" rather than
		// fatal; Save does not fsync before renaming, so a crash
		// right after a snapshot can leave prog.log empty.
		return 0, nil
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// Save snapshots offset by writing it to prog.tmp and renaming it
// over prog.log.
func (p *ProgressStore) Save(offset uint64) error {
	tmpPath := filepath.Join(p.dir, progressTmpName)
	finalPath := filepath.Join(p.dir, progressFileName)

	file, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0640)
	if err != nil {
		return fmt.Errorf("open %s: %w", tmpPath, err)
	}

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], offset)
	n, err := file.Write(buf[:])
	closeErr := file.Close()
	if err != nil {
		return fmt.Errorf("write %s: %w", tmpPath, err)
	}
	if n != len(buf) {
		return fmt.Errorf("short write to %s: wrote %d of %d bytes", tmpPath, n, len(buf))
	}
	if closeErr != nil {
		return fmt.Errorf("close %s: %w", tmpPath, closeErr)
	}

	return os.Rename(tmpPath, finalPath)
}
