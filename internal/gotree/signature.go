// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package gotree

import (
	"fmt"
	"go/ast"
	"strings"

	"github.com/petar-djukic/declcmp/pkg/types"
)

// funcSignature renders a canonical signature for a function or method
// declaration, including its name and receiver.
func funcSignature(fn *ast.FuncDecl) string {
	var b strings.Builder
	b.WriteString("func ")

	if fn.Recv != nil && len(fn.Recv.List) > 0 {
		// Receiver names are immaterial to the API surface; only the
		// receiver type is rendered.
		b.WriteString("(")
		b.WriteString(exprString(fn.Recv.List[0].Type))
		b.WriteString(") ")
	}

	b.WriteString(fn.Name.Name)
	b.WriteString("(")
	b.WriteString(fieldListString(fn.Type.Params))
	b.WriteString(")")
	b.WriteString(resultsString(fn.Type.Results))

	return b.String()
}

// interfaceMethods renders an interface's method set as Function
// nodes; embedded interfaces become Other members.
func interfaceMethods(iface *ast.InterfaceType) []*types.Node {
	if iface.Methods == nil {
		return nil
	}

	var nodes []*types.Node
	for _, method := range iface.Methods.List {
		if len(method.Names) == 0 {
			// Embedded interface.
			nodes = append(nodes, &types.Node{
				Kind:      types.Other,
				Name:      exprString(method.Type),
				Signature: exprString(method.Type),
			})
			continue
		}
		ft, ok := method.Type.(*ast.FuncType)
		if !ok {
			continue
		}
		name := method.Names[0].Name
		sig := name + "(" + fieldListString(ft.Params) + ")" + resultsString(ft.Results)
		nodes = append(nodes, &types.Node{
			Kind:      types.Function,
			Name:      name,
			Signature: sig,
		})
	}
	return nodes
}

// structSignature renders a struct type listing field names and types.
func structSignature(st *ast.StructType) string {
	if st.Fields == nil || len(st.Fields.List) == 0 {
		return "struct{}"
	}

	var parts []string
	for _, field := range st.Fields.List {
		typeStr := exprString(field.Type)
		if len(field.Names) == 0 {
			// Embedded field.
			parts = append(parts, typeStr)
			continue
		}
		for _, name := range field.Names {
			parts = append(parts, name.Name+" "+typeStr)
		}
	}
	return "struct { " + strings.Join(parts, "; ") + " }"
}

// resultsString renders a result list, parenthesized when it has
// multiple or named results.
func resultsString(results *ast.FieldList) string {
	if results == nil || len(results.List) == 0 {
		return ""
	}
	text := fieldListString(results)
	if len(results.List) == 1 && len(results.List[0].Names) == 0 {
		return " " + text
	}
	return " (" + text + ")"
}

// fieldListString renders a field list as a comma-separated string.
func fieldListString(fl *ast.FieldList) string {
	if fl == nil || len(fl.List) == 0 {
		return ""
	}

	var parts []string
	for _, field := range fl.List {
		typeStr := exprString(field.Type)
		if len(field.Names) == 0 {
			parts = append(parts, typeStr)
			continue
		}
		for _, name := range field.Names {
			parts = append(parts, name.Name+" "+typeStr)
		}
	}
	return strings.Join(parts, ", ")
}

// exprString renders an AST type expression as a string.
func exprString(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.SelectorExpr:
		return exprString(e.X) + "." + e.Sel.Name
	case *ast.StarExpr:
		return "*" + exprString(e.X)
	case *ast.ArrayType:
		if e.Len == nil {
			return "[]" + exprString(e.Elt)
		}
		return "[" + exprString(e.Len) + "]" + exprString(e.Elt)
	case *ast.MapType:
		return "map[" + exprString(e.Key) + "]" + exprString(e.Value)
	case *ast.InterfaceType:
		if e.Methods == nil || len(e.Methods.List) == 0 {
			return "interface{}"
		}
		return "interface{...}"
	case *ast.StructType:
		return structSignature(e)
	case *ast.FuncType:
		return "func(" + fieldListString(e.Params) + ")" + resultsString(e.Results)
	case *ast.Ellipsis:
		return "..." + exprString(e.Elt)
	case *ast.ChanType:
		switch e.Dir {
		case ast.SEND:
			return "chan<- " + exprString(e.Value)
		case ast.RECV:
			return "<-chan " + exprString(e.Value)
		default:
			return "chan " + exprString(e.Value)
		}
	case *ast.BasicLit:
		return e.Value
	case *ast.ParenExpr:
		return "(" + exprString(e.X) + ")"
	case *ast.IndexExpr:
		return exprString(e.X) + "[" + exprString(e.Index) + "]"
	case *ast.IndexListExpr:
		var parts []string
		for _, idx := range e.Indices {
			parts = append(parts, exprString(idx))
		}
		return exprString(e.X) + "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprintf("%T", expr)
	}
}
