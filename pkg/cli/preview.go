package cli

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"strings"
)

// Terminal preview for the kitty graphics protocol and the iTerm2 inline
// image sequence (OSC 1337), which WezTerm, VSCode and others also accept.
// The result image is PNG-encoded and written straight to the terminal.

var errPreviewUnsupported = errors.New("terminal does not support inline images")

func isKitty() bool {
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	// ghostty implements the kitty protocol too.
	term := strings.ToLower(os.Getenv("TERM"))
	return strings.Contains(term, "kitty") || strings.Contains(term, "ghostty")
}

func isInlineImageCapable() bool {
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "Warp", "Hyper", "vscode", "Tabby", "Bobcat":
		return true
	}
	if os.Getenv("ITERM_SESSION_ID") != "" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	return strings.Contains(term, "wezterm") || strings.Contains(term, "vscode")
}

// PreviewSupported reports whether PreviewImage can draw in this terminal.
func PreviewSupported() bool {
	return isInlineImageCapable() || isKitty()
}

// previewSize is the placement of a preview in terminal cells.
type previewSize struct {
	Cols, Rows              int
	PixelWidth, PixelHeight int
}

// computePreviewSize fits the image into at most 80x40 cells of 8x16 pixels,
// preserving the aspect ratio and never scaling up.
func computePreviewSize(w, h int) previewSize {
	const charW, charH = 8, 16
	const minCols, minRows = 6, 3
	const maxCols, maxRows = 80, 40

	scale := math.Min(1.0, math.Min(float64(maxCols*charW)/float64(w), float64(maxRows*charH)/float64(h)))
	cols := int(math.Round(float64(w) * scale / charW))
	rows := int(math.Round(float64(h) * scale / charH))
	cols = min(max(cols, minCols), maxCols)
	rows = min(max(rows, minRows), maxRows)
	return previewSize{Cols: cols, Rows: rows, PixelWidth: cols * charW, PixelHeight: rows * charH}
}

// PreviewImage draws img on out using the first protocol the terminal
// supports. Inline is tried before kitty because more terminals speak it.
func PreviewImage(out io.Writer, img image.Image) error {
	if img == nil {
		return fmt.Errorf("nil image")
	}
	var send func(io.Writer, []byte, previewSize) error
	switch {
	case isInlineImageCapable():
		send = sendInlineImage
	case isKitty():
		send = sendKittyImage
	default:
		return errPreviewUnsupported
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("png encode failed: %w", err)
	}
	b := img.Bounds()
	return send(out, buf.Bytes(), computePreviewSize(b.Dx(), b.Dy()))
}

// sendKittyImage transmits PNG data in base64 chunks of at most 4096 bytes.
// The first chunk carries the placement; q=2 suppresses terminal replies.
func sendKittyImage(out io.Writer, data []byte, size previewSize) error {
	enc := base64.StdEncoding.EncodeToString(data)
	const chunkSize = 4096
	for pos := 0; pos < len(enc); pos += chunkSize {
		end := min(pos+chunkSize, len(enc))
		more := 0
		if end < len(enc) {
			more = 1
		}
		var header string
		if pos == 0 {
			header = fmt.Sprintf("\x1b_Ga=T,f=100,t=d,q=2,c=%d,r=%d,m=%d;", size.Cols, size.Rows, more)
		} else {
			header = fmt.Sprintf("\x1b_Gm=%d;", more)
		}
		if _, err := io.WriteString(out, header+enc[pos:end]+"\x1b\\"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(out, "\n")
	return err
}

// sendInlineImage emits a single OSC 1337 File sequence.
func sendInlineImage(out io.Writer, data []byte, size previewSize) error {
	seq := fmt.Sprintf("\x1b]1337;File=name=%s;inline=1;size=%d;width=%dpx;height=%dpx:%s\a\n",
		base64.StdEncoding.EncodeToString([]byte("preview.png")), len(data),
		size.PixelWidth, size.PixelHeight, base64.StdEncoding.EncodeToString(data))
	_, err := io.WriteString(out, seq)
	return err
}
