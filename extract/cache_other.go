//go:build !linux

package extract

import "os"

func closeFile(f *os.File) error {
	return f.Close()
}
