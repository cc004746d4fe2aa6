package repl

import (
	"fmt"
	"strings"
)

const progName = "squill"

// WelcomeText shows program information and signposts help.
func WelcomeText(version string) string {
	return fmt.Sprintf("%s (%s)\nType \"help\" for help.\n", progName, version)
}

// HelpSummaryText tells the user how to get distribution terms, command
// help, and how to quit.
func HelpSummaryText() string {
	return fmt.Sprintf(`You are using %s, a CLI to SQL database engines.
Type:  \copyright for distribution terms
       \? for help with %s commands
       \q to quit`, progName, progName)
}

// HelpCommandText lists the backslash commands.
func HelpCommandText() string {
	return fmt.Sprintf(`General
  \copyright             show %s usage and distribution terms
  \q                     quit %s

Help
  \?                     show help on backslash commands

Formatting
  \pset [NAME [VALUE]]   set table output option
                         (pager, footer, format)

Settings
  \set [NAME VALUE]      set a session variable
                         (autocommit, or any name)

Informational
  \d [NAME]              describe a relation, or list all relations
  \dt [NAME]             list tables
  \dv [NAME]             list views
  \ds [NAME]             list sequences
`, progName, progName)
}

// DistTermsText is the program's distribution terms.
func DistTermsText(version string) string {
	return fmt.Sprintf("%s (%s) distributed under Apache-2.0 license: https://spdx.org/licenses/Apache-2.0.html", progName, version)
}

// helpFor selects the help text for a classified help command.
func helpFor(raw string) string {
	switch strings.ToLower(strings.Fields(raw)[0]) {
	case "help":
		return HelpSummaryText()
	case `\?`:
		return HelpCommandText()
	}
	return ""
}
