package render

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	frerror "github.com/msto63/frege/foundation/core/error"
	"github.com/msto63/frege/foundation/script"
	"github.com/msto63/frege/foundation/script/ast"
)

// Check writes one status line for a parsed file. With verbose set, a
// successful line is followed by the declared and called names.
func Check(w io.Writer, fr script.FileResult, verbose bool, st Styles) error {
	if fr.Err != nil {
		_, err := fmt.Fprintf(w, "%s %s %s\n", st.Fail.Render("FAIL"), fr.Path, Diagnostic(fr.Err))
		return err
	}

	program := fr.Result.Program
	sum := ast.Summarize(program)
	if _, err := fmt.Fprintf(w, "%s   %s %s\n", st.OK.Render("ok"), fr.Path, st.Muted.Render(
		fmt.Sprintf("(%d statements, %d functions, %d classes, %d variables, %d nodes, %s)",
			len(program.Body), len(sum.Functions), len(sum.Classes), len(sum.Variables),
			sum.Nodes, fr.Result.Duration.Round(time.Microsecond)))); err != nil {
		return err
	}
	if !verbose {
		return nil
	}

	for _, row := range []struct {
		name  string
		names []string
	}{
		{"functions", sum.Functions},
		{"classes", sum.Classes},
		{"variables", sum.Variables},
		{"calls", sum.Calls},
	} {
		if len(row.names) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "      %s %s\n",
			st.Field.Render(fmt.Sprintf("%-10s", row.name+":")),
			strings.Join(row.names, ", ")); err != nil {
			return err
		}
	}
	return nil
}

// Diagnostic formats a parse failure as "message [CODE]". Errors without a
// code are returned as is.
func Diagnostic(err error) string {
	var ferr *frerror.Error
	if !errors.As(err, &ferr) || ferr.Code() == frerror.CodeUnknown {
		return err.Error()
	}
	return fmt.Sprintf("%s [%s]", err.Error(), ferr.Code())
}
