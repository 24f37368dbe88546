package history

import (
	"io"

	"github.com/lox/pokertrainer/internal/fileutil"
)

// Export writes records to path as a PHHS file, replacing it atomically.
func Export(path string, records []HandRecord) error {
	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return EncodeHands(w, records)
	})
}

// Export writes the buffered hands to path, oldest first.
func (b *Buffer) Export(path string) error {
	return Export(path, b.Hands())
}
