package varcheck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ecmabind/varcheck/varcheck"
)

// TestScenarios covers the nine concrete end-to-end scenarios of spec.md §8.
func TestScenarios(t *testing.T) {
	cases := []struct {
		name string
		src  string
		opts []varcheck.Option
		want []string
	}{
		{
			name: "let self reference is a TDZ error",
			src:  `let x = x;`,
			want: []string{"EARLY_REFERENCE_ERROR"},
		},
		{
			name: "redeclared function-local var warns",
			src:  `function f() { var a = 2; var a = 3; }`,
			want: []string{"REDECLARED_VARIABLE"},
		},
		{
			name: "reassigning a const is an error",
			src:  `const a = 0; a = 1;`,
			want: []string{"REASSIGNED_CONSTANT"},
		},
		{
			name: "let inside a block under an if is not flagged",
			src:  `if (true) { let x = 3; }`,
			want: nil,
		},
		{
			name: "let directly under an if is flagged",
			src:  `if (true) let x = 3;`,
			want: []string{"DECLARATION_NOT_DIRECTLY_IN_BLOCK"},
		},
		{
			name: "unused local var, check enabled",
			src:  `function f() { var a; }`,
			opts: []varcheck.Option{varcheck.WithUnusedLocalAssignments(true)},
			want: []string{"UNUSED_LOCAL_ASSIGNMENT"},
		},
		{
			name: "suppress does not cover the catch/var collision",
			src:  "var e = 0; try { throw 1 } catch (e) { /** @suppress {duplicate} */ var e = 2 }",
			want: []string{"REDECLARED_VARIABLE_ERROR"},
		},
		{
			name: "arrow default-parameter capture defers the reference",
			src:  `function f(x = () => x) {}`,
			want: nil,
		},
		{
			name: "import colliding with a module-local let",
			src:  `import {x} from 'm'; let x = 0;`,
			want: []string{"REDECLARED_VARIABLE_ERROR"},
		},
		{
			name: "goog.scope body vars are exempt from the unused check",
			src:  `goog.scope(function(){ var a; });`,
			opts: []varcheck.Option{varcheck.WithUnusedLocalAssignments(true)},
			want: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			diags := check(t, tc.src, tc.opts...)
			assert.Equal(t, sortedStrings(tc.want), kinds(diags))
		})
	}
}
