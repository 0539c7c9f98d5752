package snake

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/pflag"
)

func asFlags(f *pflag.Flag) string {
	if f.Shorthand != "" {
		return fmt.Sprintf("--%s, -%s", f.Name, f.Shorthand)
	}
	return fmt.Sprintf("--%s", f.Name)
}

// FlagArg renders f set to value as a single argument.
func FlagArg(f *pflag.Flag, value string) string {
	return fmt.Sprintf("--%s=%s", f.Name, value)
}

func answerTemplates() *promptui.PromptTemplates {
	return &promptui.PromptTemplates{
		Prompt:  "Answer {{ . }} : ",
		Valid:   "Answer {{ . | green }} : ",
		Invalid: "Answer {{ . | red }} : ",
		Success: "{{ . | bold }} : ",
	}
}

func (w *Wizard) ask(f *pflag.Flag, label string, validate promptui.ValidateFunc) (string, error) {
	_, _ = fmt.Fprintf(w.Out, "%s: %s [%s] Default: %s\n", asFlags(f), f.Usage, f.Value.Type(), f.DefValue)
	prompt := promptui.Prompt{
		Label:     label,
		Templates: answerTemplates(),
		Validate:  validate,
		Stdin:     w.In,
		Stdout:    w.Out,
	}
	result, err := prompt.Run()
	if err != nil {
		return "", err
	}
	if result == "" {
		result = f.DefValue
	}
	return result, nil
}

func (w *Wizard) promptBool(f *pflag.Flag) (string, error) {
	label := "true/false"
	if def, err := ParseBool(f.DefValue); err == nil {
		if def {
			label = "[true]/false"
		} else {
			label = "true/[false]"
		}
	}
	result, err := w.ask(f, label, func(input string) error {
		if input == "" {
			return nil
		}
		_, err := ParseBool(input)
		return err
	})
	if err != nil {
		return "", err
	}
	b, _ := ParseBool(result)
	return FlagArg(f, strconv.FormatBool(b)), nil
}

func (w *Wizard) promptInt(f *pflag.Flag) (string, error) {
	result, err := w.ask(f, fmt.Sprintf("[%s]", f.DefValue), func(input string) error {
		if input == "" {
			return nil
		}
		_, err := strconv.Atoi(input)
		return err
	})
	if err != nil {
		return "", err
	}
	return FlagArg(f, result), nil
}

func (w *Wizard) promptString(f *pflag.Flag) (string, error) {
	result, err := w.ask(f, fmt.Sprintf(`["%s"]`, f.DefValue), func(input string) error {
		if input == "" && f.DefValue == "" {
			return errors.New("empty")
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return FlagArg(f, result), nil
}

// ParseBool is strconv.ParseBool with the addition of Yes/No parsing.
func ParseBool(str string) (bool, error) {
	switch str {
	case "1", "t", "T", "true", "TRUE", "True", "y", "Y", "yes", "YES", "Yes":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "n", "N", "no", "NO", "No":
		return false, nil
	}
	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// NopCloser returns a WriteCloser with a no-op Close method wrapping w.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}
