package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	frerror "github.com/msto63/frege/foundation/core/error"
	"github.com/msto63/frege/foundation/script"
	"github.com/msto63/frege/internal/render"
)

const stdinName = "<stdin>"

// input is one script to process; err is set when it could not be read
type input struct {
	src script.Source
	err error
}

// readInputs reads the named files in order, or stdin when args is empty
// or "-"
func readInputs(cmd *cobra.Command, args []string) []input {
	if len(args) == 0 {
		args = []string{"-"}
	}

	inputs := make([]input, len(args))
	for i, name := range args {
		if name == "-" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				err = frerror.Wrap(err, "failed to read stdin").
					WithCode(frerror.CodeIO).
					WithOperation("cli.read").
					WithSource(stdinName)
			}
			inputs[i] = input{src: script.Source{Name: stdinName, Text: string(data)}, err: err}
			continue
		}

		text, err := readFile(name)
		inputs[i] = input{src: script.Source{Name: name, Text: text}, err: err}
	}
	return inputs
}

// readFile reads a script, classifying the failure like Engine.ParseFile
func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := frerror.CodeIO
		if errors.Is(err, fs.ErrNotExist) {
			code = frerror.CodeNotFound
		}
		return "", frerror.Wrap(err, "failed to read script").
			WithCode(code).
			WithOperation("cli.read").
			WithSource(path)
	}
	return string(data), nil
}

// report prints a failure for name to stderr
func report(cmd *cobra.Command, name string, err error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", name, render.Diagnostic(err))
}

// failure picks the error ending a command after failures were reported.
// Read failures outrank parse failures.
func failure(readFailed, parseFailed bool) error {
	switch {
	case readFailed:
		return errInputFailed
	case parseFailed:
		return errParseFailed
	default:
		return nil
	}
}
