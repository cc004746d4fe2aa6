package repl

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/leapstack-labs/squill/internal/session"
)

// RunStateCommand applies a \set or \pset command to the settings store.
// With no arguments the current values are printed to out. The same code
// path serves the in-REPL commands and the --set/--pset CLI flags.
func RunStateCommand(st *session.Settings, raw string, out io.Writer) error {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil
	}

	switch strings.ToLower(fields[0]) {
	case `\pset`:
		return runPset(st, fields[1:], out)
	case `\set`:
		return runSet(st, fields[1:], out)
	}
	return nil
}

func runPset(st *session.Settings, args []string, out io.Writer) error {
	switch len(args) {
	case 0:
		_, _ = fmt.Fprintf(out, "pager is %s\n", onOff(st.Pager))
		_, _ = fmt.Fprintf(out, "footer is %s\n", onOff(st.Footer))
		_, _ = fmt.Fprintf(out, "format is %s\n", st.Format)
		return nil
	case 1:
		value, err := st.Get(args[0])
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "%s is %s\n", strings.ToLower(args[0]), settingString(value))
		return nil
	default:
		return st.SetPrint(args[0], args[1])
	}
}

func runSet(st *session.Settings, args []string, out io.Writer) error {
	switch len(args) {
	case 0:
		_, _ = fmt.Fprintf(out, "autocommit = %s\n", onOff(st.Autocommit))
		names := make([]string, 0, len(st.Vars))
		for name := range st.Vars {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			_, _ = fmt.Fprintf(out, "%s = %s\n", name, st.Vars[name])
		}
		return nil
	case 1:
		// NAME=VALUE form, as issued from the command line.
		name, value, ok := strings.Cut(args[0], "=")
		if !ok {
			return nil
		}
		st.SetNamed(name, value)
		return nil
	default:
		st.SetNamed(args[0], strings.Join(args[1:], " "))
		return nil
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func settingString(v any) string {
	if b, ok := v.(bool); ok {
		return onOff(b)
	}
	return fmt.Sprintf("%v", v)
}
