// Package command parses contact-book input lines into typed commands and
// checks the format of the values they carry.
package command

// Command is a parsed input line. The set of implementations is closed.
type Command interface {
	// Verb returns the keyword that introduced the command.
	Verb() string
	isCommand()
}

// Verify at compile time that every variant implements Command.
var (
	_ Command = AddPhone{}
	_ Command = AddEmail{}
	_ Command = Show{}
	_ Command = Find{}
	_ Command = Export{}
	_ Command = Exit{}
	_ Command = Help{}
)

// AddPhone appends a phone number to a person, creating the person if needed.
type AddPhone struct {
	Name  string
	Phone string
}

// AddEmail appends an email address to a person, creating the person if needed.
type AddEmail struct {
	Name  string
	Email string
}

// Show prints the phones and emails recorded for a person.
type Show struct {
	Name string
}

// Find lists the people holding an exact phone or email value.
type Find struct {
	Value string
}

// Export writes a snapshot of every contact to a file.
type Export struct {
	Path string
}

// Exit ends the session.
type Exit struct{}

// Help lists the available commands.
type Help struct{}

func (AddPhone) Verb() string { return verbAdd }
func (AddEmail) Verb() string { return verbAdd }
func (Show) Verb() string     { return verbShow }
func (Find) Verb() string     { return verbFind }
func (Export) Verb() string   { return verbExport }
func (Exit) Verb() string     { return verbExit }
func (Help) Verb() string     { return verbHelp }

func (AddPhone) isCommand() {}
func (AddEmail) isCommand() {}
func (Show) isCommand()     {}
func (Find) isCommand()     {}
func (Export) isCommand()   {}
func (Exit) isCommand()     {}
func (Help) isCommand()     {}

const (
	verbAdd    = "add"
	verbShow   = "show"
	verbFind   = "find"
	verbExport = "export"
	verbExit   = "exit"
	verbHelp   = "help"
)

// Usage lines, one per command form, in the order help prints them.
var Usage = []string{
	"add <name> phone <+digits>",
	"add <name> email <user@host.tld>",
	"show <name>",
	"find <phone|email>",
	"export <path>",
	"help",
	"exit",
}
