package render

import (
	"os"
	"os/exec"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// DecidePager reports whether rendered output should go through the
// external pager. It is false whenever paging is disabled or the terminal
// size is unknown. Otherwise it checks the line count against the terminal
// height and the length of a sample of lines, taken across the whole data
// rather than just the head, against the terminal width. The sampling
// trades exactness for not walking every line of a large rendering.
func DecidePager(enabled bool, data, sampleSep string, sampleCount, width, height int) bool {
	if !enabled || width <= 0 || height <= 0 {
		return false
	}

	lines := strings.Split(data, sampleSep)
	if len(lines) > height {
		return true
	}

	step := 1
	if sampleCount > 0 && len(lines) > sampleCount {
		step = len(lines) / sampleCount
	}
	for i := 0; i < len(lines); i += step {
		if utf8.RuneCountInString(lines[i]) > width {
			return true
		}
	}
	return false
}

// TermSize returns the terminal dimensions of stdout, or zeros when stdout
// is not a terminal.
func TermSize() (width, height int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0, 0
	}
	return w, h
}

// Page hands the text to the external pager over stdin. The pager command
// comes from $PAGER, falling back to less and then more.
func Page(text string) error {
	name, args := pagerCommand()
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(text)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func pagerCommand() (string, []string) {
	if pager := os.Getenv("PAGER"); pager != "" {
		fields := strings.Fields(pager)
		return fields[0], fields[1:]
	}
	if path, err := exec.LookPath("less"); err == nil {
		return path, []string{"-FRX"}
	}
	return "more", nil
}
