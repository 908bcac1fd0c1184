// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package gotree

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/petar-djukic/declcmp/pkg/types"
)

// Config configures tree building.
type Config struct {
	// IncludeUnexported includes unexported declarations; by default
	// only the exported surface is compared.
	IncludeUnexported bool

	// Concurrency bounds the parser worker pool for directory scans.
	// <= 0 means runtime.NumCPU().
	Concurrency int
}

// BuildDir builds a declaration tree from the Go package rooted at
// dir. Subdirectories containing Go files become Package members of
// the root node, with slash-joined qualified names, so the recursion
// filter can prune them by path.
func BuildDir(dir string, cfg Config) (*types.Node, error) {
	files, err := scanDir(dir, cfg.Concurrency)
	if err != nil {
		return nil, err
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving directory: %w", err)
	}
	return assemble(filepath.Base(absDir), files, cfg)
}

// BuildSources builds a declaration tree from in-memory sources keyed
// by slash-separated relative path. rootName names the root package
// node when the root directory itself has no Go files.
func BuildSources(rootName string, sources map[string]string, cfg Config) (*types.Node, error) {
	fset := token.NewFileSet()
	files := make(map[string]*ast.File, len(sources))
	for relPath, src := range sources {
		if !strings.HasSuffix(relPath, ".go") || strings.HasSuffix(relPath, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, relPath, src, parser.SkipObjectResolution)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", relPath, err)
		}
		files[path.Clean(relPath)] = f
	}
	return assemble(rootName, files, cfg)
}

// assemble groups parsed files by directory and builds the root
// package node. The root directory's files form the root package;
// every other directory with Go files becomes a nested Package member.
func assemble(rootName string, files map[string]*ast.File, cfg Config) (*types.Node, error) {
	byDir := make(map[string][]string) // dir -> sorted rel paths
	for relPath := range files {
		d := path.Dir(relPath)
		if d == "." {
			d = ""
		}
		byDir[d] = append(byDir[d], relPath)
	}
	for _, paths := range byDir {
		sort.Strings(paths)
	}

	rootFiles := byDir[""]
	name := rootName
	if len(rootFiles) > 0 {
		name = files[rootFiles[0]].Name.Name
	}

	root := buildPackage(name, name, rootFiles, files, cfg)

	var dirs []string
	for d := range byDir {
		if d != "" {
			dirs = append(dirs, d)
		}
	}
	sort.Strings(dirs)

	for _, d := range dirs {
		paths := byDir[d]
		pkgName := files[paths[0]].Name.Name
		qname := name + "/" + d
		root.Members = append(root.Members, buildPackage(pkgName, qname, paths, files, cfg))
	}

	return root, nil
}

// buildPackage builds a single Package node from the files of one
// directory. Struct and interface types become Class nodes with their
// methods attached by receiver base type; top-level functions become
// Function members; vars and consts become Property members.
func buildPackage(name, qname string, relPaths []string, files map[string]*ast.File, cfg Config) *types.Node {
	pkg := &types.Node{
		Kind:          types.Package,
		Name:          name,
		QualifiedName: qname,
		Signature:     "package " + name,
	}

	classes := make(map[string]*types.Node)
	methods := make(map[string][]*types.Node)

	for _, relPath := range relPaths {
		for _, decl := range files[relPath].Decls {
			switch d := decl.(type) {
			case *ast.FuncDecl:
				addFunc(pkg, methods, d, cfg)
			case *ast.GenDecl:
				addGenDecl(pkg, classes, d, cfg)
			}
		}
	}

	// Attach methods to their receiver's class node. Methods whose
	// receiver type was filtered out (or declared elsewhere) are
	// dropped with it.
	for recv, ms := range methods {
		if class, ok := classes[recv]; ok {
			class.Members = append(class.Members, ms...)
		}
	}

	return pkg
}

// addFunc records a top-level function or method declaration.
func addFunc(pkg *types.Node, methods map[string][]*types.Node, fn *ast.FuncDecl, cfg Config) {
	if !cfg.IncludeUnexported && !ast.IsExported(fn.Name.Name) {
		return
	}

	node := &types.Node{
		Kind:      types.Function,
		Name:      fn.Name.Name,
		Signature: funcSignature(fn),
	}

	if fn.Recv != nil && len(fn.Recv.List) > 0 {
		recv := receiverBase(fn.Recv.List[0].Type)
		if recv == "" {
			return
		}
		methods[recv] = append(methods[recv], node)
		return
	}
	pkg.Members = append(pkg.Members, node)
}

// addGenDecl records type, var, and const declarations.
func addGenDecl(pkg *types.Node, classes map[string]*types.Node, gd *ast.GenDecl, cfg Config) {
	for _, spec := range gd.Specs {
		switch s := spec.(type) {
		case *ast.TypeSpec:
			if !cfg.IncludeUnexported && !ast.IsExported(s.Name.Name) {
				continue
			}
			node := typeNode(s)
			if node.Kind == types.Class {
				classes[s.Name.Name] = node
			}
			pkg.Members = append(pkg.Members, node)
		case *ast.ValueSpec:
			kw := "var"
			if gd.Tok == token.CONST {
				kw = "const"
			}
			for _, ident := range s.Names {
				if ident.Name == "_" {
					continue
				}
				if !cfg.IncludeUnexported && !ast.IsExported(ident.Name) {
					continue
				}
				sig := kw + " " + ident.Name
				if s.Type != nil {
					sig += " " + exprString(s.Type)
				}
				pkg.Members = append(pkg.Members, &types.Node{
					Kind:      types.Property,
					Name:      ident.Name,
					Signature: sig,
				})
			}
		}
	}
}

// typeNode builds the node for a type declaration. Structs and
// interfaces are class-like scopes; other type definitions are simple
// members.
func typeNode(ts *ast.TypeSpec) *types.Node {
	switch t := ts.Type.(type) {
	case *ast.StructType:
		return &types.Node{
			Kind:      types.Class,
			Name:      ts.Name.Name,
			Signature: "type " + ts.Name.Name + " " + structSignature(t),
		}
	case *ast.InterfaceType:
		node := &types.Node{
			Kind:      types.Class,
			Name:      ts.Name.Name,
			Signature: "type " + ts.Name.Name + " interface",
		}
		node.Members = append(node.Members, interfaceMethods(t)...)
		return node
	default:
		return &types.Node{
			Kind:      types.Other,
			Name:      ts.Name.Name,
			Signature: "type " + ts.Name.Name + " " + exprString(ts.Type),
		}
	}
}

// receiverBase returns the base type name of a method receiver,
// stripping pointers and type parameters.
func receiverBase(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.StarExpr:
		return receiverBase(e.X)
	case *ast.IndexExpr:
		return receiverBase(e.X)
	case *ast.IndexListExpr:
		return receiverBase(e.X)
	default:
		return ""
	}
}
