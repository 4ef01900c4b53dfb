package uiutil

import (
	"fmt"
	"io"

	"github.com/atotto/clipboard"
)

// clipboardWrite is swapped in tests.
var clipboardWrite = clipboard.WriteAll

// CopyResult says where copied text ended up.
type CopyResult int

const (
	// CopiedToClipboard means the system clipboard accepted the text.
	CopiedToClipboard CopyResult = iota
	// CopiedToWriter means the clipboard was unavailable and the text was
	// written to the fallback writer instead.
	CopiedToWriter
)

// CopyToClipboard puts text on the system clipboard. When no clipboard is
// available the text is written to fallback so it can be copied by hand.
func CopyToClipboard(text string, fallback io.Writer) (CopyResult, error) {
	if !clipboard.Unsupported {
		if err := clipboardWrite(text); err == nil {
			return CopiedToClipboard, nil
		}
	}
	if fallback == nil {
		return CopiedToWriter, fmt.Errorf("clipboard unavailable and no fallback writer")
	}
	if _, err := io.WriteString(fallback, text); err != nil {
		return CopiedToWriter, fmt.Errorf("failed to write fallback copy: %w", err)
	}
	return CopiedToWriter, nil
}
