package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/frege/foundation/script/parser"
	"github.com/msto63/frege/internal/render"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Print the token stream of a script",
	Long: `Tokenize a script and print one token per line with its character
offset, kind and quoted text. Whitespace and comments are skipped as the
parser skips them.

On a lexical error the tokens before the offending character are
printed, followed by the error on stderr.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	in := readInputs(cmd, args)[0]
	if in.err != nil {
		report(cmd, in.src.Name, in.err)
		return errInputFailed
	}

	lexer := parser.NewLexer(in.src.Text)
	tokens, lexErr := lexer.Tokenize()
	if lexErr == nil {
		tokens = append(tokens, parser.Token{Type: parser.TokenEOF, Offset: lexer.Cursor()})
	}

	if err := render.Tokens(cmd.OutOrStdout(), tokens, styles()); err != nil {
		return err
	}
	if lexErr != nil {
		report(cmd, in.src.Name, lexErr)
		return errParseFailed
	}
	return nil
}
