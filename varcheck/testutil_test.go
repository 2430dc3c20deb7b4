package varcheck_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecmabind/varcheck/lang/parser"
	"github.com/ecmabind/varcheck/lang/scopebuild"
	"github.com/ecmabind/varcheck/lang/token"
	"github.com/ecmabind/varcheck/varcheck"
)

// check parses src, builds its scope tree, and runs the analyzer, failing
// the test immediately on a parse error. This is the one place in the
// package's tests that imports lang/parser: the analyzer itself never does
// (varcheck.go's package doc).
func check(t *testing.T, src string, opts ...varcheck.Option) []varcheck.Diagnostic {
	t.Helper()
	fset := token.NewFileSet()
	prog, err := parser.ParseProgram(fset, "test.js", []byte(src), parser.Comments)
	require.NoError(t, err)
	res := scopebuild.Build(prog)
	return varcheck.New(opts...).Check(prog, res)
}

// kinds extracts and sorts the Kind of each diagnostic, for order-
// insensitive assertions against an expected multiset.
func kinds(diags []varcheck.Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Kind.String()
	}
	sort.Strings(out)
	return out
}

func sortedStrings(ss []string) []string {
	out := append([]string(nil), ss...)
	sort.Strings(out)
	return out
}
