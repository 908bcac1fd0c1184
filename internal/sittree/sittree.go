// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package sittree builds declaration trees from Python, JavaScript,
// and TypeScript sources using tree-sitter. Signatures are the trimmed
// first source line of each declaration, so the canonical form stays
// close to what the author wrote.
// Implements: prd005-sitter-frontend R1, R2.
package sittree

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/petar-djukic/declcmp/pkg/types"
)

// langSpec maps a language's tree-sitter node types onto declaration
// kinds.
type langSpec struct {
	lang       *sitter.Language
	classTypes map[string]bool // class declaration node types
	funcTypes  map[string]bool // function declaration node types
	ctorName   string          // method name marking the primary constructor
}

// supportedLangs maps file extensions to their langSpec.
var supportedLangs = map[string]*langSpec{
	".py": {
		lang:       python.GetLanguage(),
		classTypes: map[string]bool{"class_definition": true},
		funcTypes:  map[string]bool{"function_definition": true},
		ctorName:   "__init__",
	},
	".js": {
		lang:       javascript.GetLanguage(),
		classTypes: map[string]bool{"class_declaration": true},
		funcTypes:  map[string]bool{"function_declaration": true, "method_definition": true},
		ctorName:   "constructor",
	},
	".ts": {
		lang:       typescript.GetLanguage(),
		classTypes: map[string]bool{"class_declaration": true},
		funcTypes:  map[string]bool{"function_declaration": true, "method_definition": true},
		ctorName:   "constructor",
	},
}

// Supported reports whether files with the given extension can be
// parsed.
func Supported(ext string) bool {
	_, ok := supportedLangs[ext]
	return ok
}

// BuildDir walks dir and builds one Package node holding the
// declarations of every supported file. Files that fail to parse abort
// the build; unsupported extensions are skipped.
func BuildDir(ctx context.Context, dir string) (*types.Node, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving directory: %w", err)
	}
	name := filepath.Base(absDir)
	root := &types.Node{
		Kind:          types.Package,
		Name:          name,
		QualifiedName: name,
		Signature:     "package " + name,
	}

	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip files we cannot stat
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if info.IsDir() {
			base := filepath.Base(path)
			if base == ".git" || base == "vendor" || base == "node_modules" {
				return filepath.SkipDir
			}
			return nil
		}

		if _, ok := supportedLangs[filepath.Ext(path)]; !ok {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		members, err := BuildSource(ctx, content, filepath.Ext(path))
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		root.Members = append(root.Members, members...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return root, nil
}

// BuildSource parses one source file and returns its top-level
// declarations.
func BuildSource(ctx context.Context, content []byte, ext string) ([]*types.Node, error) {
	spec, ok := supportedLangs[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported extension %q", ext)
	}

	root, err := sitter.ParseCtx(ctx, content, spec.lang)
	if err != nil {
		return nil, err
	}

	return topLevelDecls(root, content, spec), nil
}

// topLevelDecls converts the named children of a module node into
// declaration nodes.
func topLevelDecls(module *sitter.Node, content []byte, spec *langSpec) []*types.Node {
	var nodes []*types.Node
	for i := 0; i < int(module.NamedChildCount()); i++ {
		child := unwrap(module.NamedChild(i))
		switch {
		case spec.classTypes[child.Type()]:
			nodes = append(nodes, classNode(child, content, spec))
		case spec.funcTypes[child.Type()]:
			if n := funcNode(child, content, spec, false); n != nil {
				nodes = append(nodes, n)
			}
		case child.Type() == "lexical_declaration" || child.Type() == "variable_declaration":
			nodes = append(nodes, declaratorNodes(child, content)...)
		case child.Type() == "expression_statement":
			// Python module-level assignment.
			if a := namedChildOfType(child, "assignment"); a != nil {
				if n := assignmentNode(a, content); n != nil {
					nodes = append(nodes, n)
				}
			}
		}
	}
	return nodes
}

// classNode builds a Class node with its methods and nested classes.
func classNode(node *sitter.Node, content []byte, spec *langSpec) *types.Node {
	class := &types.Node{
		Kind:      types.Class,
		Name:      fieldContent(node, "name", content),
		Signature: firstLine(node, content),
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return class
	}

	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := unwrap(body.NamedChild(i))
		switch {
		case spec.funcTypes[member.Type()]:
			if n := funcNode(member, content, spec, true); n != nil {
				if n.Kind == types.Constructor {
					class.Constructors = append(class.Constructors, n)
				} else {
					class.Members = append(class.Members, n)
				}
			}
		case spec.classTypes[member.Type()]:
			class.Companions = append(class.Companions, classNode(member, content, spec))
		case member.Type() == "field_definition" || member.Type() == "public_field_definition":
			class.Members = append(class.Members, &types.Node{
				Kind:      types.Property,
				Name:      fieldContent(member, "name", content),
				Signature: firstLine(member, content),
			})
		}
	}
	return class
}

// funcNode builds a Function node, or a primary Constructor when a
// method carries the language's constructor name.
func funcNode(node *sitter.Node, content []byte, spec *langSpec, inClass bool) *types.Node {
	name := fieldContent(node, "name", content)
	if name == "" {
		return nil
	}
	n := &types.Node{
		Kind:      types.Function,
		Name:      name,
		Signature: firstLine(node, content),
	}
	if inClass && name == spec.ctorName {
		n.Kind = types.Constructor
		n.Primary = true
	}
	return n
}

// declaratorNodes builds Property nodes for each variable declarator
// in a JS/TS declaration statement.
func declaratorNodes(node *sitter.Node, content []byte) []*types.Node {
	var nodes []*types.Node
	for i := 0; i < int(node.NamedChildCount()); i++ {
		d := node.NamedChild(i)
		if d.Type() != "variable_declarator" {
			continue
		}
		name := fieldContent(d, "name", content)
		if name == "" {
			continue
		}
		nodes = append(nodes, &types.Node{
			Kind:      types.Property,
			Name:      name,
			Signature: firstLine(node, content),
		})
	}
	return nodes
}

// assignmentNode builds a Property node for a Python module-level
// assignment to a plain identifier.
func assignmentNode(node *sitter.Node, content []byte) *types.Node {
	left := node.ChildByFieldName("left")
	if left == nil || left.Type() != "identifier" {
		return nil
	}
	return &types.Node{
		Kind:      types.Property,
		Name:      left.Content(content),
		Signature: firstLine(node, content),
	}
}

// unwrap descends through wrapper nodes (decorators, exports) to the
// declaration they carry.
func unwrap(node *sitter.Node) *sitter.Node {
	switch node.Type() {
	case "decorated_definition":
		if def := node.ChildByFieldName("definition"); def != nil {
			return def
		}
	case "export_statement":
		if decl := node.ChildByFieldName("declaration"); decl != nil {
			return decl
		}
	}
	return node
}

// namedChildOfType returns the first named child of the given type.
func namedChildOfType(node *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if c := node.NamedChild(i); c.Type() == typ {
			return c
		}
	}
	return nil
}

// fieldContent returns the text of a named field, or "".
func fieldContent(node *sitter.Node, field string, content []byte) string {
	f := node.ChildByFieldName(field)
	if f == nil {
		return ""
	}
	return f.Content(content)
}

// firstLine returns the trimmed first source line of a node.
func firstLine(node *sitter.Node, content []byte) string {
	text := node.Content(content)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}
