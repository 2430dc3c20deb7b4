package varcheck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ecmabind/varcheck/varcheck"
)

// TestRuleEdgeCases covers the rule-engine special cases spec.md §4.4 calls
// out individually, beyond the nine end-to-end scenarios of §8.
func TestRuleEdgeCases(t *testing.T) {
	cases := []struct {
		name string
		src  string
		opts []varcheck.Option
		want []string
	}{
		{
			name: "bleeding function expression name never collides with a var of the same name in its own body",
			src:  `var x = function f() { var f = 1; return f; };`,
			want: nil,
		},
		{
			name: "two parameters sharing a name is always an error",
			src:  `function f(a, a) {}`,
			want: []string{"REDECLARED_VARIABLE_ERROR"},
		},
		{
			name: "parameter colliding with a body let is an error",
			src:  `function f(a) { let a; }`,
			want: []string{"REDECLARED_VARIABLE_ERROR"},
		},
		{
			name: "var/function collision at global scope delegates to VarCheck, no local diagnostic",
			src:  `var a; function a() {}`,
			want: nil,
		},
		{
			name: "fileoverview suppress duplicate masks a var/var collision in a function",
			src:  "/**\n * @fileoverview\n * @suppress {duplicate}\n */\nfunction f() { var a = 1; var a = 2; }",
			want: nil,
		},
		{
			name: "declaration-level suppress duplicate masks only the annotated pair",
			src:  "function f() { var a = 1; /** @suppress {duplicate} */ var a = 2; }",
			want: nil,
		},
		{
			name: "self-init idiom at global scope does not warn for var",
			src:  `var x = x || {};`,
			want: nil,
		},
		{
			name: "classic hoisted-function idiom referencing a later var is not early",
			src:  `function f() { a = 2; } var a; f();`,
			want: nil,
		},
		{
			name: "a function declared inside a nested block is not hoistable, so a call before it warns",
			src:  `{ f(); function f() {} }`,
			want: []string{"EARLY_REFERENCE"},
		},
		{
			name: "direct read before let declaration in the same scope is a TDZ error",
			src:  `console.log(x); let x = 1;`,
			want: []string{"EARLY_REFERENCE_ERROR"},
		},
		{
			name: "class declared outside a block directly under a for loop",
			src:  `for (;;) class C {}`,
			want: []string{"DECLARATION_NOT_DIRECTLY_IN_BLOCK"},
		},
		{
			name: "var declared outside a block is permitted (legacy hoisting)",
			src:  `if (true) var x = 1;`,
			want: nil,
		},
		{
			name: "shorthand object property counts as a read",
			src:  `function f() { var x = 1; return {x}; }`,
			opts: []varcheck.Option{varcheck.WithUnusedLocalAssignments(true)},
			want: nil,
		},
		{
			name: "for-of loop variable is always considered used",
			src:  `function f(xs) { for (var x of xs) { } }`,
			opts: []varcheck.Option{varcheck.WithUnusedLocalAssignments(true)},
			want: nil,
		},
		{
			name: "last write with no following read still warns even after an earlier read",
			src:  `function f() { var a = 1; console.log(a); a = 2; }`,
			opts: []varcheck.Option{varcheck.WithUnusedLocalAssignments(true)},
			want: []string{"UNUSED_LOCAL_ASSIGNMENT"},
		},
		{
			name: "exported module-local let is never unused",
			src:  `export let x = 1;`,
			opts: []varcheck.Option{varcheck.WithUnusedLocalAssignments(true)},
			want: nil,
		},
		{
			name: "typedef binding is never unused",
			src:  "function f() { /** @typedef {number} */ var Foo; }",
			opts: []varcheck.Option{varcheck.WithUnusedLocalAssignments(true)},
			want: nil,
		},
		{
			name: "unused check is off by default",
			src:  `function f() { var a; }`,
			want: nil,
		},
		{
			name: "goog.loadModule bundled form classifies its body as a module",
			src:  `goog.loadModule(function(exports){ 'use strict'; goog.module('m'); var a = 1; return exports; });`,
			want: nil,
		},
		{
			name: "reassigning an imported binding is an error",
			src:  `import {x} from 'm'; x = 1;`,
			want: []string{"REASSIGNED_CONSTANT"},
		},
		{
			name: "compound assignment to a const is still a reassignment error",
			src:  `const a = 0; a += 1;`,
			want: []string{"REASSIGNED_CONSTANT"},
		},
		{
			name: "increment of a const is a reassignment error",
			src:  `const a = 0; a++;`,
			want: []string{"REASSIGNED_CONSTANT"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			diags := check(t, tc.src, tc.opts...)
			assert.Equal(t, sortedStrings(tc.want), kinds(diags))
		})
	}
}
