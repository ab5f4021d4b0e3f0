package sync

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jameswei2019/bfs/public"
)

const logFileName = "sync.log"

// DurableLog is the append-only sync.log: a write handle positioned
// at end-of-file and an independent read cursor positioned wherever
// the caller last left it (normally at sync_offset, so the
// Replicator can stream unacknowledged records in order).
//
// The on-disk record format is a 4-byte little-endian length prefix
// followed by that many payload bytes, laid out contiguously from
// offset 0. Two separate *os.File handles are kept deliberately: a
// writer appending under O_APPEND and a reader doing plain
// sequential Read calls. Sharing one *os.File would make the read
// cursor's position race the writer's own Write calls from another
// goroutine.
type DurableLog struct {
	writeFile *os.File
	readFile  *os.File
}

// OpenDurableLog opens (creating if necessary) sync.log for append,
// and a second handle positioned at readOffset for sequential reads.
// It returns the write handle's current end-of-file offset as
// currentOffset.
func OpenDurableLog(dir string, readOffset uint64) (log *DurableLog, currentOffset uint64, err error) {
	path := filepath.Join(dir, logFileName)

	writeFile, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0640)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s for append: %w", path, err)
	}
	info, err := writeFile.Stat()
	if err != nil {
		writeFile.Close()
		return nil, 0, fmt.Errorf("stat %s: %w", path, err)
	}
	currentOffset = uint64(info.Size())

	readFile, err := os.Open(path)
	if err != nil {
		writeFile.Close()
		return nil, 0, fmt.Errorf("open %s for read: %w", path, err)
	}
	if _, err := readFile.Seek(int64(readOffset), os.SEEK_SET); err != nil {
		writeFile.Close()
		readFile.Close()
		return nil, 0, fmt.Errorf("seek %s to %d: %w", path, readOffset, err)
	}

	return &DurableLog{writeFile: writeFile, readFile: readFile}, currentOffset, nil
}

// Append writes one record (length prefix + payload) and returns the
// total bytes written, 4+len(payload). A short write anywhere in the
// record — including the length prefix — is fatal: it means the
// local filesystem tore a single append, which this design has no
// way to repair.
func (d *DurableLog) Append(payload []byte) (uint64, error) {
	var prefix [4]byte
	binary.LittleEndian.PutUint32(prefix[:], uint32(len(payload)))

	if err := writeFull(d.writeFile, prefix[:]); err != nil {
		return 0, fmt.Errorf("[sync] append length prefix: %w", err)
	}
	if err := writeFull(d.writeFile, payload); err != nil {
		return 0, fmt.Errorf("[sync] append payload: %w", err)
	}
	return uint64(4 + len(payload)), nil
}

func writeFull(f *os.File, buf []byte) error {
	n, err := f.Write(buf)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return fmt.Errorf("short write: wrote %d of %d bytes", n, len(buf))
	}
	return nil
}

// ReadRecord reads the next record off the read cursor: a 4-byte
// length prefix, then that many payload bytes. Returns ErrShortRead
// if fewer than 4 bytes are available for the prefix, or
// ErrIncompleteRecord if fewer than len payload bytes follow — both
// are fatal conditions under this design, signaling a torn append
// under the single-writer/single-process model sync.log is written
// under.
func (d *DurableLog) ReadRecord() ([]byte, error) {
	var prefix [4]byte
	if err := readFull(d.readFile, prefix[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", public.ErrShortRead, err)
	}
	length := binary.LittleEndian.Uint32(prefix[:])

	payload := make([]byte, length)
	if err := readFull(d.readFile, payload); err != nil {
		return nil, fmt.Errorf("%w: %v", public.ErrIncompleteRecord, err)
	}
	return payload, nil
}

func readFull(f *os.File, buf []byte) error {
	total := 0
	for total < len(buf) {
		n, err := f.Read(buf[total:])
		total += n
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("read returned 0 bytes with no error")
		}
	}
	return nil
}

// Close releases both file handles.
func (d *DurableLog) Close() error {
	err1 := d.writeFile.Close()
	err2 := d.readFile.Close()
	if err1 != nil {
		return err1
	}
	return err2
}
