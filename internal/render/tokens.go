package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/msto63/frege/foundation/script/parser"
)

// Tokens writes a token table with offset, kind and quoted value columns.
// An EOF token, if present, is shown without a value.
func Tokens(w io.Writer, tokens []parser.Token, st Styles) error {
	if _, err := fmt.Fprintf(w, "%s %s %s\n",
		st.Header.Render(fmt.Sprintf("%-7s", "OFFSET")),
		st.Header.Render(fmt.Sprintf("%-24s", "KIND")),
		st.Header.Render("VALUE")); err != nil {
		return err
	}

	for _, tok := range tokens {
		value := strconv.Quote(tok.Value)
		if tok.Type == parser.TokenEOF {
			value = st.Muted.Render("-")
		}
		// Pad before styling; escape sequences would break the column width
		if _, err := fmt.Fprintf(w, "%-7d %s %s\n",
			tok.Offset,
			st.Kind.Render(fmt.Sprintf("%-24s", tok.Type)),
			value); err != nil {
			return err
		}
	}
	return nil
}
