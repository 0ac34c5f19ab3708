package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	frerror "github.com/msto63/frege/foundation/core/error"
	frlog "github.com/msto63/frege/foundation/core/log"
	"github.com/msto63/frege/foundation/script"
	"github.com/msto63/frege/foundation/script/ast"
	"github.com/msto63/frege/foundation/script/parser"
	"github.com/msto63/frege/pkg/core/config"
)

func mustParse(t *testing.T, source string) *ast.Program {
	t.Helper()
	program, err := script.Parse(source)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", source, err)
	}
	return program
}

// normalize decodes a JSON or YAML document into plain Go values with
// float64 numbers so both encodings compare equal
func normalize(t *testing.T, data []byte, isYAML bool) interface{} {
	t.Helper()
	var v interface{}
	if isYAML {
		if err := yaml.Unmarshal(data, &v); err != nil {
			t.Fatalf("yaml.Unmarshal() error = %v\n%s", err, data)
		}
		var err error
		if data, err = json.Marshal(v); err != nil {
			t.Fatalf("json.Marshal() error = %v", err)
		}
	}
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("json.Unmarshal() error = %v\n%s", err, data)
	}
	return v
}

func TestJSON(t *testing.T) {
	program := mustParse(t, "42;")

	compact, err := JSON(program, 2, true)
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	want := `{"type":"Program","body":[{"type":"ExpressionStatement","expression":{"type":"NumericLiteral","value":42}}]}` + "\n"
	if string(compact) != want {
		t.Errorf("JSON(compact) = %s, want %s", compact, want)
	}

	indented, err := JSON(program, 4, false)
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	if !strings.HasPrefix(string(indented), "{\n    \"type\": \"Program\",\n    \"body\": [") {
		t.Errorf("JSON(indent 4) =\n%s", indented)
	}
	if !reflect.DeepEqual(normalize(t, compact, false), normalize(t, indented, false)) {
		t.Error("compact and indented JSON differ")
	}
}

func TestJSONKeepsOperators(t *testing.T) {
	out, err := JSON(mustParse(t, "a < b && c;"), 0, false)
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	for _, want := range []string{`"operator":"<"`, `"operator":"&&"`} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("JSON() = %s, missing %s", out, want)
		}
	}
}

func TestYAML(t *testing.T) {
	sources := []string{
		"",
		`let a = "1", b;`,
		"def f(x) { return x * 2; } f(3);",
		"class P extends Q { def constructor() { super(); this.n = null; } }",
		"for (let i = 0; i < 10; i += 1) { if (!done) go(); else ; }",
	}

	for _, source := range sources {
		t.Run(source, func(t *testing.T) {
			program := mustParse(t, source)
			jsonOut, err := JSON(program, 0, true)
			if err != nil {
				t.Fatalf("JSON() error = %v", err)
			}
			yamlOut, err := YAML(program, 2)
			if err != nil {
				t.Fatalf("YAML() error = %v", err)
			}

			if !strings.HasPrefix(string(yamlOut), "type: Program\n") {
				t.Errorf("YAML() does not start with the type key:\n%s", yamlOut)
			}
			if bytes.Contains(yamlOut, []byte("{")) {
				t.Errorf("YAML() contains flow style:\n%s", yamlOut)
			}
			if !reflect.DeepEqual(normalize(t, jsonOut, false), normalize(t, yamlOut, true)) {
				t.Errorf("YAML and JSON documents differ:\n%s\n%s", yamlOut, jsonOut)
			}
		})
	}
}

func TestYAMLQuotesAmbiguousStrings(t *testing.T) {
	out, err := YAML(mustParse(t, `"1"; "null"; 1;`), 2)
	if err != nil {
		t.Fatalf("YAML() error = %v", err)
	}
	for _, want := range []string{`value: "1"`, `value: "null"`, "value: 1\n"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("YAML() missing %s:\n%s", want, out)
		}
	}
}

func TestTree(t *testing.T) {
	out := Tree(mustParse(t, "let a = 1 + 2, b; f(a);"), NewStyles(false))

	want := []string{
		"Program",
		"body [2]",
		"VariableStatement",
		"declarations [2]",
		"VariableDeclaration",
		`id: Identifier name="a"`,
		`init: BinaryExpression operator="+"`,
		"left: NumericLiteral value=1",
		"right: NumericLiteral value=2",
		"VariableDeclaration",
		`id: Identifier name="b"`,
		"ExpressionStatement",
		"expression: CallExpression",
		`callee: Identifier name="f"`,
		"arguments [1]",
		`Identifier name="a"`,
	}

	lines := strings.Split(out, "\n")
	if len(lines) != len(want) {
		t.Fatalf("Tree() has %d lines, want %d:\n%s", len(lines), len(want), out)
	}
	for i, line := range lines {
		got := strings.TrimLeft(line, "│├└─ ")
		if got != want[i] {
			t.Errorf("line %d = %q, want %q", i, got, want[i])
		}
	}
}

func TestTreeEmptyLists(t *testing.T) {
	out := Tree(mustParse(t, "def f() {}"), NewStyles(false))
	for _, want := range []string{"params [0]", "body [0]", `name: Identifier name="f"`} {
		if !strings.Contains(out, want) {
			t.Errorf("Tree() missing %q:\n%s", want, out)
		}
	}
}

func TestBytes(t *testing.T) {
	program := mustParse(t, "x = 1;")

	tests := []struct {
		name    string
		opts    Options
		want    string
		wantErr bool
	}{
		{"sexpr", Options{Format: config.FormatSExpr}, "(program (= x 1))\n", false},
		{"compact json", Options{Format: config.FormatJSON, Compact: true}, `{"type":"Program"`, false},
		{"default format", Options{}, `{"type":"Program"`, false},
		{"yaml", Options{Format: config.FormatYAML, Indent: 2}, "type: Program\n", false},
		{"tree", Options{Format: config.FormatTree}, "Program\n", false},
		{"unknown", Options{Format: "xml"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Render(&buf, program, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Render() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !frerror.HasCode(err, frerror.CodeInvalidInput) {
					t.Errorf("code = %s, want INVALID_INPUT", frerror.GetCode(err))
				}
				return
			}
			if !strings.HasPrefix(buf.String(), tt.want) {
				t.Errorf("Render() = %q, want prefix %q", buf.String(), tt.want)
			}
			if !strings.HasSuffix(buf.String(), "\n") {
				t.Error("Render() output does not end with a newline")
			}
		})
	}
}

func TestCacheFormat(t *testing.T) {
	opts := []Options{
		{Format: config.FormatJSON, Indent: 2},
		{Format: config.FormatJSON, Indent: 4},
		{Format: config.FormatJSON, Compact: true},
		{Format: config.FormatYAML, Indent: 2},
		{Format: config.FormatTree, Color: true},
		{Format: config.FormatTree},
		{Format: config.FormatSExpr},
	}

	seen := map[string]Options{}
	for _, o := range opts {
		key := o.CacheFormat()
		if prev, ok := seen[key]; ok {
			t.Errorf("%+v and %+v share cache format %q", prev, o, key)
		}
		seen[key] = o
	}

	if a, b := (Options{Format: config.FormatSExpr, Indent: 2}), (Options{Format: config.FormatSExpr, Indent: 8}); a.CacheFormat() != b.CacheFormat() {
		t.Error("indent must not affect the sexpr cache format")
	}
}

func TestTokens(t *testing.T) {
	lexer := parser.NewLexer(`let x = "hi";`)
	tokens, err := lexer.Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	tokens = append(tokens, parser.Token{Type: parser.TokenEOF, Offset: lexer.Cursor()})

	var buf bytes.Buffer
	if err := Tokens(&buf, tokens, NewStyles(false)); err != nil {
		t.Fatalf("Tokens() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("Tokens() has %d lines, want 7:\n%s", len(lines), buf.String())
	}

	tests := []struct {
		line   int
		fields []string
	}{
		{0, []string{"OFFSET", "KIND", "VALUE"}},
		{1, []string{"0", "let", `"let"`}},
		{2, []string{"4", "IDENTIFIER", `"x"`}},
		{3, []string{"6", "SIMPLE_ASSIGN", `"="`}},
		{4, []string{"8", "STRING", `"\"hi\""`}},
		{5, []string{"12", ";", `";"`}},
		{6, []string{"13", "EOF", "-"}},
	}
	for _, tt := range tests {
		if got := strings.Fields(lines[tt.line]); !reflect.DeepEqual(got, tt.fields) {
			t.Errorf("line %d = %q, want %q", tt.line, got, tt.fields)
		}
	}
}

func TestCheck(t *testing.T) {
	engine := script.New(script.Options{Logger: frlog.Discard()})
	ctx := context.Background()

	res, err := engine.Parse(ctx, "ok.fr", "def f(a) { return g(a); } class C {} let v;")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	var buf bytes.Buffer
	if err := Check(&buf, script.FileResult{Path: "ok.fr", Result: res}, true, NewStyles(false)); err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"ok   ok.fr (3 statements, 1 functions, 1 classes, 2 variables,",
		"functions: f\n",
		"classes:   C\n",
		"variables: a, v\n",
		"calls:     g\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Check() missing %q:\n%s", want, out)
		}
	}

	_, perr := engine.Parse(ctx, "bad.fr", "let 1;")
	buf.Reset()
	if err := Check(&buf, script.FileResult{Path: "bad.fr", Err: perr}, false, NewStyles(false)); err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	want := `FAIL bad.fr syntax error: unexpected token "1" at line 1, column 5: expected "IDENTIFIER" [SCRIPT_GRAMMAR]` + "\n"
	if buf.String() != want {
		t.Errorf("Check() = %q, want %q", buf.String(), want)
	}
}

func TestDiagnostic(t *testing.T) {
	plain := errors.New("boom")
	if got := Diagnostic(plain); got != "boom" {
		t.Errorf("Diagnostic(plain) = %q", got)
	}

	coded := frerror.New("too big").WithCode(frerror.CodeInputTooLarge)
	if got := Diagnostic(coded); got != "too big [INPUT_TOO_LARGE]" {
		t.Errorf("Diagnostic(coded) = %q", got)
	}
}
