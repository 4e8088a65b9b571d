package extract

import (
	"os"

	"golang.org/x/sys/unix"
)

// closeFile drops the file's pages from the OS cache before closing it;
// a document is read once per run.
func closeFile(f *os.File) error {
	_ = unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_DONTNEED)
	return f.Close()
}
