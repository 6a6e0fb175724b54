// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package teereader

import (
	"bytes"
	"io"
	"strings"
	"sync"
)

const ellipsis = "..."

// LastLineReader passes reads through from the wrapped reader and records the
// last non-blank complete line seen. LastLine may be called concurrently with Read.
type LastLineReader struct {
	r        io.Reader
	mu       sync.RWMutex
	lastLine string
	partial  []byte
}

// NewLastLineReader wraps r.
func NewLastLineReader(r io.Reader) *LastLineReader {
	return &LastLineReader{r: r}
}

// Read implements io.Reader.
func (l *LastLineReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	if n > 0 {
		l.observe(p[:n])
	}

	return n, err //nolint:wrapcheck
}

func (l *LastLineReader) observe(data []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.partial = append(l.partial, data...)

	for {
		i := bytes.IndexByte(l.partial, '\n')
		if i < 0 {
			return
		}

		if line := strings.TrimSpace(string(l.partial[:i])); line != "" {
			l.lastLine = line
		}

		l.partial = l.partial[i+1:]
	}
}

// LastLine returns the last complete line, or "" if none has been read.
// When maxLength is greater than the length of the ellipsis, longer lines are
// truncated to maxLength bytes ending in "...".
func (l *LastLineReader) LastLine(maxLength int) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	line := l.lastLine
	if maxLength > len(ellipsis) && len(line) > maxLength {
		line = line[:maxLength-len(ellipsis)] + ellipsis
	}

	return line
}

// Partial returns buffered bytes after the last newline.
func (l *LastLineReader) Partial() string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return string(l.partial)
}
