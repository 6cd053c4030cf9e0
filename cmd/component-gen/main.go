// Command component-gen scans a package for struct types marked with a
// //prism:component comment and generates a registration helper, so large
// games do not hand-maintain a Register call per component type.
//
// Usage:
//
//	component-gen -dir ./internal/game -out zz_generated_components.go
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/ast"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/imports"
)

const marker = "prism:component"

func main() {
	dir := flag.String("dir", ".", "Directory of the package to scan.")
	out := flag.String("out", "zz_generated_components.go", "Output file name, written into the scanned directory.")
	flag.Parse()

	pkg, err := loadPackage(*dir)
	if err != nil {
		log.Fatalf("component-gen: %v", err)
	}

	names := markedTypes(pkg)
	if len(names) == 0 {
		log.Fatalf("component-gen: no //%s types found in %s", marker, *dir)
	}

	src, err := render(pkg.Name, names)
	if err != nil {
		log.Fatalf("component-gen: %v", err)
	}

	outPath := filepath.Join(*dir, *out)
	formatted, err := imports.Process(outPath, src, nil)
	if err != nil {
		log.Fatalf("component-gen: formatting output: %v", err)
	}

	if err := os.WriteFile(outPath, formatted, 0o644); err != nil {
		log.Fatalf("component-gen: %v", err)
	}
	log.Printf("component-gen: wrote %d registrations to %s", len(names), outPath)
}

func loadPackage(dir string) (*packages.Package, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
		Dir:  dir,
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, err
	}
	if len(pkgs) != 1 {
		return nil, fmt.Errorf("expected one package in %s, found %d", dir, len(pkgs))
	}
	if len(pkgs[0].Errors) > 0 {
		return nil, fmt.Errorf("loading %s: %v", dir, pkgs[0].Errors[0])
	}
	return pkgs[0], nil
}

// markedTypes collects the names of all types whose doc comment carries the
// marker, sorted for stable output.
func markedTypes(pkg *packages.Package) []string {
	var names []string
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			genDecl, ok := decl.(*ast.GenDecl)
			if !ok {
				continue
			}
			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				if hasMarker(typeSpec.Doc) || (len(genDecl.Specs) == 1 && hasMarker(genDecl.Doc)) {
					names = append(names, typeSpec.Name.Name)
				}
			}
		}
	}
	sort.Strings(names)
	return names
}

func hasMarker(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}
	for _, comment := range doc.List {
		text := strings.TrimSpace(strings.TrimPrefix(comment.Text, "//"))
		if text == marker {
			return true
		}
	}
	return false
}

func render(pkgName string, names []string) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by component-gen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkgName)
	fmt.Fprintf(&buf, "import \"github.com/prism-engine/prism/ecs\"\n\n")
	fmt.Fprintf(&buf, "// RegisterGeneratedComponents registers every marked component type.\n")
	fmt.Fprintf(&buf, "func RegisterGeneratedComponents(registry *ecs.Registry) {\n")
	for _, name := range names {
		fmt.Fprintf(&buf, "\tecs.Register[%s](registry)\n", name)
	}
	fmt.Fprintf(&buf, "}\n")
	return buf.Bytes(), nil
}
