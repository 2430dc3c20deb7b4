package ast

import "strings"

// JSDoc is the tag table extracted from a /** ... */ comment, the JSDoc
// query API of spec.md §6. Only the tags this pass inspects are kept.
type JSDoc struct {
	Suppress     []string // @suppress {tag1,tag2}
	Typedef      bool     // @typedef
	Fileoverview bool     // @fileoverview
	Types        []string // @type {...} contents, kept for completeness
}

// DocOf returns the JSDoc attached to n, or nil. Only the declaration forms
// that carry a Doc field (var/let/const declarations, function
// declarations, class declarations) can have one.
func DocOf(n Node) *JSDoc {
	switch n := n.(type) {
	case *VarDecl:
		return n.Doc
	case *FunctionDecl:
		return n.Doc
	case *ClassDecl:
		return n.Doc
	default:
		return nil
	}
}

// HasSuppress reports whether tag is present in a @suppress annotation.
func (d *JSDoc) HasSuppress(tag string) bool {
	if d == nil {
		return false
	}
	for _, t := range d.Suppress {
		if t == tag {
			return true
		}
	}
	return false
}

// ParseJSDoc extracts tags from the raw text of a /** ... */ comment
// (delimiters included). Unrecognized tags are ignored; this is a minimal
// tag scanner, not a JSDoc type-expression parser.
func ParseJSDoc(raw string) *JSDoc {
	body := strings.TrimPrefix(raw, "/**")
	body = strings.TrimSuffix(body, "*/")

	doc := &JSDoc{}
	found := false

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "@") {
			continue
		}
		found = true

		tag, rest, _ := strings.Cut(line[1:], " ")
		switch tag {
		case "suppress":
			doc.Suppress = append(doc.Suppress, parseBraced(rest)...)
		case "typedef":
			doc.Typedef = true
		case "fileoverview":
			doc.Fileoverview = true
		case "type":
			doc.Types = append(doc.Types, parseBraced(rest)...)
		}
	}

	if !found {
		return nil
	}
	return doc
}

// parseBraced extracts comma-separated contents of the first "{...}" group.
func parseBraced(s string) []string {
	start := strings.IndexByte(s, '{')
	end := strings.IndexByte(s, '}')
	if start < 0 || end < 0 || end < start {
		return nil
	}
	inner := s[start+1 : end]
	parts := strings.Split(inner, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
