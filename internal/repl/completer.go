package repl

import "github.com/chzyer/readline"

// sqlCompletions are the SQL keywords offered by tab completion.
var sqlCompletions = []string{
	"select", "insert", "update", "delete", "create", "drop",
	"from", "where", "and", "or", "not", "like",
	"order by", "group by", "into", "values",
	"begin", "commit", "rollback",
}

// commandCompletions are the backslash commands offered by tab completion.
var commandCompletions = []string{
	`\q`, `\set`, `\pset`, `\?`, `\copyright`,
	`\d`, `\dt`, `\dv`, `\ds`,
	"help",
}

// NewCompleter builds the readline completer over SQL keywords and
// backslash commands.
func NewCompleter() *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(sqlCompletions)+len(commandCompletions))
	for _, word := range sqlCompletions {
		items = append(items, readline.PcItem(word))
	}
	for _, word := range commandCompletions {
		items = append(items, readline.PcItem(word))
	}
	return readline.NewPrefixCompleter(items...)
}
