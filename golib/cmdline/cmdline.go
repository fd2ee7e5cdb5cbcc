package cmdline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	arg "github.com/alexflint/go-arg"
	"github.com/satdlab/satdprep/golib/errors"
)

// ErrUsage is returned by Dispatch when the command line could not be
// matched to a command; usage has already been written.
var ErrUsage = errors.New("usage error")

// errHelp is returned by Dispatch after help output was written.
var errHelp = errors.New("help requested")

// Command represents an action that can be run from the command line
type Command struct {
	Name     string
	Synopsis string
	Args     Handler
}

// Handler represents a function that gets called for an action
type Handler interface {
	Handle() error
}

// Validator is the interface for custom validation of command line arguments
type Validator interface {
	Validate() error
}

func prog(args []string) string {
	if len(args) > 0 {
		return filepath.Base(args[0])
	}
	return "program"
}

func writeUsage(w io.Writer, name string, cmds ...Command) {
	fmt.Fprintf(w, "Usage: %s COMMAND [ARGS]\n", name)
	fmt.Fprintf(w, "Command can be one of:\n")
	for _, cmd := range cmds {
		fmt.Fprintf(w, "  %-20s %s\n", cmd.Name, cmd.Synopsis)
	}
	fmt.Fprintf(w, "  %-20s %s\n", "help", "display this help and exit")
	fmt.Fprintf(w, "  %-20s %s\n", "help COMMAND", "display help for command and exit")
}

// Dispatch parses args (including the program name at args[0]) and runs the
// matching command's handler, writing usage and help to w. Handler errors are
// returned unchanged.
func Dispatch(args []string, w io.Writer, cmds ...Command) error {
	name := prog(args)
	if len(args) < 2 {
		writeUsage(w, name, cmds...)
		fmt.Fprintln(w, "\nError: no command provided")
		return ErrUsage
	}

	var help bool
	action := args[1]
	if action == "help" {
		if len(args) < 3 {
			writeUsage(w, name, cmds...)
			fmt.Fprintln(w, "\nFor help on a specific command use help COMMAND")
			return errHelp
		}
		help = true
		action = args[2]
	}

	var cmd *Command
	for i := range cmds {
		if cmds[i].Name == action {
			cmd = &cmds[i]
			break
		}
	}
	if cmd == nil {
		writeUsage(w, name, cmds...)
		fmt.Fprintln(w, "\nError: unknown command", action)
		return ErrUsage
	}

	parser, err := arg.NewParser(arg.Config{Program: name + " " + action}, cmd.Args)
	if err != nil {
		return errors.Wrapf(err, "building parser for %s", action)
	}

	if help {
		parser.WriteHelp(w)
		return errHelp
	}

	if err := parser.Parse(args[2:]); err != nil {
		if err == arg.ErrHelp {
			parser.WriteHelp(w)
			return errHelp
		}
		parser.WriteUsage(w)
		fmt.Fprintln(w, "error:", err)
		return ErrUsage
	}

	if v, ok := cmd.Args.(Validator); ok {
		if err := v.Validate(); err != nil {
			parser.WriteUsage(w)
			fmt.Fprintln(w, "error:", err)
			return ErrUsage
		}
	}

	return cmd.Args.Handle()
}

// MustDispatch dispatches one of the commands using os.Args and exits with a
// non-zero status if the command fails.
func MustDispatch(cmds ...Command) {
	err := Dispatch(os.Args, os.Stdout, cmds...)
	switch {
	case err == nil:
	case err == errHelp:
		os.Exit(0)
	case err == ErrUsage:
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
