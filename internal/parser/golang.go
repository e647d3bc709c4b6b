// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package parser extracts handler documentation from Go source files.
package parser

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
)

// GoParser provides Go AST parsing capabilities. Parsed files are cached by
// path, so resolving many handlers from one file parses it once.
type GoParser struct {
	fset  *token.FileSet
	files map[string]*ParsedFile
}

// NewGoParser creates a new Go parser.
func NewGoParser() *GoParser {
	return &GoParser{
		fset:  token.NewFileSet(),
		files: make(map[string]*ParsedFile),
	}
}

// ParsedFile represents a parsed Go source file.
type ParsedFile struct {
	// Path is the file path
	Path string

	// AST is the parsed AST
	AST *ast.File

	// FileSet is the token file set for position information
	FileSet *token.FileSet
}

// FuncDoc is the documentation of one function or method declaration.
type FuncDoc struct {
	// Name is the function name
	Name string

	// Receiver is the receiver type name without pointer, empty for functions
	Receiver string

	// Doc is the doc comment text with comment markers removed
	Doc string

	// Position is the location of the func keyword
	Position token.Position
}

// QualifiedName returns "Receiver.Name" for methods and "Name" otherwise.
func (f FuncDoc) QualifiedName() string {
	if f.Receiver == "" {
		return f.Name
	}
	return f.Receiver + "." + f.Name
}

// ParseSource parses Go source code from a string.
func (p *GoParser) ParseSource(filename, source string) (*ParsedFile, error) {
	file, err := parser.ParseFile(p.fset, filename, source, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Go source: %w", err)
	}

	return &ParsedFile{
		Path:    filename,
		AST:     file,
		FileSet: p.fset,
	}, nil
}

// ParseFile parses a Go source file from disk, reusing an earlier result for
// the same path.
func (p *GoParser) ParseFile(path string) (*ParsedFile, error) {
	if pf, ok := p.files[path]; ok {
		return pf, nil
	}

	file, err := parser.ParseFile(p.fset, path, nil, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Go file %s: %w", path, err)
	}

	pf := &ParsedFile{
		Path:    path,
		AST:     file,
		FileSet: p.fset,
	}
	p.files[path] = pf
	return pf, nil
}

// ExtractFuncs returns every function and method declaration of a file in
// source order.
func (p *GoParser) ExtractFuncs(pf *ParsedFile) []FuncDoc {
	var funcs []FuncDoc

	for _, decl := range pf.AST.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}

		fd := FuncDoc{
			Name:     fn.Name.Name,
			Position: pf.FileSet.Position(fn.Pos()),
		}
		if fn.Recv != nil && len(fn.Recv.List) > 0 {
			fd.Receiver = receiverName(fn.Recv.List[0].Type)
		}
		if fn.Doc != nil {
			fd.Doc = strings.TrimSpace(fn.Doc.Text())
		}
		funcs = append(funcs, fd)
	}

	return funcs
}

// FindFunc looks up a declaration by name ("Func" or "Type.Method").
func (p *GoParser) FindFunc(pf *ParsedFile, name string) (FuncDoc, bool) {
	for _, fd := range p.ExtractFuncs(pf) {
		if fd.QualifiedName() == name {
			return fd, true
		}
	}
	return FuncDoc{}, false
}

// LookupHandler resolves a "path/to/file.go#Func" reference.
func (p *GoParser) LookupHandler(ref string) (FuncDoc, error) {
	path, name, ok := strings.Cut(ref, "#")
	if !ok || path == "" || name == "" {
		return FuncDoc{}, fmt.Errorf("invalid handler reference %q: want file.go#Func", ref)
	}

	pf, err := p.ParseFile(path)
	if err != nil {
		return FuncDoc{}, err
	}

	fd, found := p.FindFunc(pf, name)
	if !found {
		return FuncDoc{}, fmt.Errorf("function %s not found in %s", name, path)
	}
	return fd, nil
}

// receiverName extracts the type name from a receiver expression,
// unwrapping pointers and type parameters.
func receiverName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return receiverName(t.X)
	case *ast.IndexExpr:
		return receiverName(t.X)
	case *ast.IndexListExpr:
		return receiverName(t.X)
	case *ast.ParenExpr:
		return receiverName(t.X)
	default:
		return ""
	}
}
