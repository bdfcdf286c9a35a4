package cmd

import (
	"log"
	"strings"

	"github.com/jessevdk/go-flags"
)

// Run is the entry point for the CLI.  It exits the process on error.
func Run(args []string) {
	if err := Execute(args); err != nil {
		log.Fatalf("%v", err)
	}
}

// Execute parses args and runs the selected sub-command.
func Execute(args []string) error {
	setParfilePath(extractParfilePath(args))

	opts := &Options{}
	opts.Init(commandName(args))
	setOptions(opts)

	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	_, err := parser.ParseArgs(args)
	return err
}

// commandName returns the first argument that is neither a global option nor
// its value.
func commandName(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "-f" || a == "--parfile":
			i++
		case strings.HasPrefix(a, "-"):
		default:
			return a
		}
	}
	return ""
}

// extractParfilePath searches the raw argument list for the -f/--parfile
// option before full parsing so that the service can load it lazily from a
// deterministic location.
func extractParfilePath(args []string) string {
	for i, a := range args {
		switch a {
		case "-f", "--parfile":
			if i+1 < len(args) {
				return args[i+1]
			}
		default:
			if strings.HasPrefix(a, "--parfile=") {
				return strings.TrimPrefix(a, "--parfile=")
			}
		}
	}
	return ""
}
