package output

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// DetectColor reports whether styled output should be written to w.
// NO_COLOR, a non terminal writer or an ascii-only terminal disable it.
func DetectColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}

	return termenv.NewOutput(f).Profile != termenv.Ascii
}
