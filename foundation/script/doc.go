// Package script is the entry point to the script front-end.
//
// Parse turns source text into an ast.Program and is all most callers
// need. Engine adds what a tool around the parser wants: an input size
// limit, context cancellation, per-parse IDs in the log, file loading,
// parallel parsing of independent files and structured *error.Error values
// carrying SCRIPT_LEXICAL or SCRIPT_GRAMMAR codes. The underlying
// *parser.LexicalError or *parser.GrammarError stays reachable through
// errors.As.
//
// Basic usage:
//
//	engine := script.New(script.Options{Logger: logger})
//	res, err := engine.Parse(ctx, "inline", "let x = 1;")
//	if err != nil {
//		logger.LogError(err)
//		return
//	}
//	fmt.Println(res.Program)
package script
