package helpers

import (
	"io"
	"os"

	"github.com/depot/shredder/pkg/ci"
	"github.com/mattn/go-isatty"
)

func IsTerminal() bool {
	_, isCI := ci.Provider()
	return !isCI && isTerminal(os.Stdout) && isTerminal(os.Stderr)
}

// IsPiped reports whether r delivers data without a user typing it. Readers
// that are not files count as piped.
func IsPiped(r io.Reader) bool {
	f, ok := r.(*os.File)
	return !ok || !isTerminal(f)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
