// Package snake walks a cobra command tree with prompts and turns the answers
// into the argument list that runs the chosen command.
package snake

import (
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Wizard prompts for a command under Root, its flags and its arguments.
type Wizard struct {
	Root *cobra.Command
	// Skip names commands that are never offered, like the wizard itself.
	Skip []string
	In   io.ReadCloser
	Out  io.WriteCloser
}

const continueName = "Run it"

// Run prompts until a runnable command is chosen and returns the arguments
// for Root, starting with the command path below Root.
func (w *Wizard) Run() ([]string, error) {
	cmd := w.Root
	var path []string
	for {
		next, err := w.pickCommand(cmd)
		if err != nil {
			return nil, err
		}
		path = append(path, next.Name())
		cmd = next
		if len(Candidates(cmd, w.Skip)) == 0 {
			break
		}
	}

	flags, err := w.promptFlags(cmd)
	if err != nil {
		return nil, err
	}
	args := append(path, flags...)

	if TakesArgs(cmd) {
		rest, err := w.promptArgs(cmd)
		if err != nil {
			return nil, err
		}
		args = append(args, rest...)
	}
	return args, nil
}

// Candidates are the subcommands of cmd that can be offered.
func Candidates(cmd *cobra.Command, skip []string) []*cobra.Command {
	var out []*cobra.Command
	for _, c := range cmd.Commands() {
		if !c.IsAvailableCommand() || c.Name() == "help" || contains(skip, c.Name()) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// TakesArgs reports whether the usage line of cmd names positional arguments.
func TakesArgs(cmd *cobra.Command) bool {
	return strings.Contains(cmd.Use, " ")
}

func contains(all []string, s string) bool {
	for _, a := range all {
		if a == s {
			return true
		}
	}
	return false
}

func (w *Wizard) pickCommand(cmd *cobra.Command) (*cobra.Command, error) {
	subcommands := Candidates(cmd, w.Skip)
	if len(subcommands) == 0 {
		return nil, fmt.Errorf("%s has no subcommands", cmd.Name())
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Name | bold }} {{ .Short | green }}",
		Inactive: "   {{ .Name }} {{ .Short | cyan }}",
		Selected: "{{ .Use | bold }}",
		Details: `
--------- Details ----------
{{ .Long }}
`,
	}

	searcher := func(input string, index int) bool {
		c := subcommands[index]
		name := strings.Replace(strings.ToLower(c.Name()+c.Short), " ", "", -1)
		input = strings.Replace(strings.ToLower(input), " ", "", -1)
		return strings.Contains(name, input)
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     cmd.Name(),
		Items:     subcommands,
		Templates: templates,
		Size:      10,
		Searcher:  searcher,
		Stdin:     w.In,
		Stdout:    w.Out,
	}
	i, _, err := prompt.Run()
	if err != nil {
		return nil, err
	}
	return subcommands[i], nil
}

// Flags offers every local and inherited flag of cmd except help, followed
// by an entry that ends the loop.
func Flags(cmd *cobra.Command) []*pflag.Flag {
	var fs []*pflag.Flag
	visit := func(f *pflag.Flag) {
		if f.Hidden || f.Name == "help" {
			return
		}
		fs = append(fs, f)
	}
	cmd.LocalFlags().VisitAll(visit)
	cmd.InheritedFlags().VisitAll(visit)
	return append(fs, &pflag.Flag{Name: continueName, Value: &continueType{}})
}

func (w *Wizard) promptFlags(cmd *cobra.Command) ([]string, error) {
	fs := Flags(cmd)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . | magenta }} flags?",
		Active:   "➜ {{ if eq .Value.Type \"continue\" }}{{ .Name | bold | green }}{{ else }}{{ .Name | bold }} {{ .Usage | cyan }}{{ end }}",
		Inactive: "  {{ if eq .Value.Type \"continue\" }}{{ .Name | faint | green }}{{ else }}{{ .Name }} {{ .Usage | cyan }}{{ end }}",
		Selected: "{{ if eq .Value.Type \"continue\" }}{{ .Name | bold | green }}{{ else }}{{ .Name | bold }}{{ end }}",
		Details: `
--------- Details ----------
default: {{ .DefValue }}
type: {{ .Value.Type }}
`,
	}

	searcher := func(input string, index int) bool {
		name := strings.Replace(strings.ToLower(fs[index].Name), " ", "", -1)
		input = strings.Replace(strings.ToLower(input), " ", "", -1)
		return strings.Contains(name, input)
	}

	var args []string
	index := len(fs) - 1
	for {
		prompt := promptui.Select{
			HideHelp:  true,
			Label:     cmd.Name(),
			Items:     fs,
			Templates: templates,
			Size:      10,
			CursorPos: index,
			Searcher:  searcher,
			Stdin:     w.In,
			Stdout:    w.Out,
		}
		i, _, err := prompt.Run()
		if err != nil {
			return nil, err
		}
		index = i

		f := fs[i]
		var arg string
		switch t := f.Value.Type(); t {
		case "continue":
			return args, nil
		case "bool":
			arg, err = w.promptBool(f)
		case "int":
			arg, err = w.promptInt(f)
		case "string":
			arg, err = w.promptString(f)
		default:
			_, _ = fmt.Fprintf(w.Out, "%q flags are not supported here, pass %s directly\n", t, asFlags(f))
			continue
		}
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
}

func (w *Wizard) promptArgs(cmd *cobra.Command) ([]string, error) {
	prompt := promptui.Prompt{
		Label:     strings.TrimPrefix(cmd.Use, cmd.Name()+" "),
		Templates: answerTemplates(),
		Stdin:     w.In,
		Stdout:    w.Out,
	}
	result, err := prompt.Run()
	if err != nil {
		return nil, err
	}
	return strings.Fields(result), nil
}

type continueType struct{}

func (*continueType) String() string {
	return ""
}

func (*continueType) Set(string) error {
	return nil
}

func (*continueType) Type() string {
	return "continue"
}
