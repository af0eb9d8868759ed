package cmd

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
)

// Compact compacts the store to reclaim disk space
func Compact() {
	box := OpenBox()
	defer box.Close()

	before := fileSize(box.Path())
	if err := box.Compact(); err != nil {
		HandleError(err)
	}
	after := fileSize(box.Path())

	fmt.Printf("compacted: %s -> %s\n", humanize.Bytes(uint64(before)), humanize.Bytes(uint64(after)))
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
