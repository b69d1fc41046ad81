package rawimg

import (
	"fmt"
	"hash/crc32"
	"io"
	"os"
)

// ChecksumFile computes the CRC-32 (IEEE) of the file at path, formatted as
// eight upper-case hex digits to match the preset database.
func ChecksumFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := crc32.NewIEEE()
	if _, err = io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%08X", h.Sum32()), nil
}
