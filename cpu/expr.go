package cpu

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// exprRegexp matches a $(...) compile-time expression.
var exprRegexp = regexp.MustCompile(`\$\([^\$]*\)`)

// EXPR_STEPS bounds the work of a single $(...) expression.
const EXPR_STEPS = 100_000

// isIdentifier is true if the label can be named inside a $(...) expression.
func isIdentifier(word string) bool {
	if len(word) == 0 {
		return false
	}
	for n, r := range word {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case n > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// parenEval evaluates a single $(...) expression. IP, the address of the
// current instruction, and every label spelled as an identifier are
// predeclared.
func (st *SymbolTable) parenEval(expr string, ip int) (value int64, err error) {
	thread := &starlark.Thread{Name: "expr"}
	thread.SetMaxExecutionSteps(EXPR_STEPS)
	opts := &syntax.FileOptions{}

	pred := starlark.StringDict{
		"IP": starlark.MakeInt(ip),
	}
	for label, label_ip := range st.All() {
		if label == "IP" || !isIdentifier(label) {
			continue
		}
		pred[label] = starlark.MakeInt(label_ip)
	}

	rc, err := starlark.EvalOptions(opts, thread, "expr", expr, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}

	st_int, ok := rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	value, ok = st_int.Int64()
	if !ok {
		err = ErrImmediateRange
		return
	}

	return
}

// expandExpressions replaces every $(...) in the line with its decimal value.
func (st *SymbolTable) expandExpressions(line string, ip int) (expanded string, err error) {
	if !strings.Contains(line, "$(") {
		expanded = line
		return
	}

	expanded = exprRegexp.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := st.parenEval(str[2:len(str)-1], ip)
		if _err != nil {
			if err == nil {
				err = _err
			}
			return str
		}
		return fmt.Sprintf("%d", value)
	})

	return
}
