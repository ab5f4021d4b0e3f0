package public

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v3/disk"
)

// CreateDir creates a dir if it doesn't already exist.
func CreateDir(path string) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		err = os.Mkdir(path, 0750)
		if err != nil {
			fmt.Println(err, "err creating dir", path)
		}
	}
}

// DiskFree returns the free bytes on the filesystem holding path, or
// 0 if the stat call fails. Used to log free space alongside the
// leader's local sync log so an operator can see the degradation
// coming before the partition fills.
func DiskFree(path string) uint64 {
	usage, err := disk.Usage(path)
	if err != nil {
		return 0
	}
	return usage.Free
}
