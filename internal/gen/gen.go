/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package gen turns declarative cast tables into Go registration code.
//
// Input (YAML):
//
//	package: pets
//	types:
//	  - source: "*HybridPet[string]"
//	    targets: [Dog, "Cat[string]"]
//	  - source: Woof
//	    targets: []
//
// The output registers one table per source in an init function and adds a
// compile-time assertion for every (source, target) pair, so a declaration
// naming an interface the source does not implement fails to build.
package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"strings"
	"text/template"

	"sigs.k8s.io/yaml"
)

// DefaultImportPath is the castx import path used when a file names none.
const DefaultImportPath = "dirpx.dev/castx"

var (
	// ErrNoPackage is returned when the declaration has no valid package name.
	ErrNoPackage = errors.New("castx(gen): missing or invalid package name")
	// ErrNoTypes is returned when the declaration lists no source types.
	ErrNoTypes = errors.New("castx(gen): no types declared")
	// ErrEmptySource is returned when a declaration has an empty source.
	ErrEmptySource = errors.New("castx(gen): empty source type")
	// ErrDuplicateSource is returned when a source is declared twice.
	ErrDuplicateSource = errors.New("castx(gen): duplicate source type")
	// ErrDuplicateTarget is returned when a source lists a target twice.
	ErrDuplicateTarget = errors.New("castx(gen): duplicate target")
	// ErrEmptyTarget is returned when a target name is empty.
	ErrEmptyTarget = errors.New("castx(gen): empty target")
)

// File is a batch of declarations rendered into one Go file.
type File struct {
	// Package is the package clause of the generated file.
	Package string `json:"package"`
	// ImportPath overrides DefaultImportPath.
	ImportPath string `json:"castx,omitempty"`
	// Imports lists extra import paths the type expressions need.
	Imports []string `json:"imports,omitempty"`
	// Types holds one declaration per concrete type, in output order.
	Types []Decl `json:"types"`
}

// Decl maps one concrete type to its ordered target interfaces.
type Decl struct {
	Source  string   `json:"source"`
	Targets []string `json:"targets"`
}

// Parse decodes and validates a YAML (or JSON) declaration file.
// Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("castx(gen): decode: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate normalises whitespace and checks the declarations.
func (f *File) Validate() error {
	f.Package = strings.TrimSpace(f.Package)
	if !token.IsIdentifier(f.Package) {
		return fmt.Errorf("%w: %q", ErrNoPackage, f.Package)
	}
	if len(f.Types) == 0 {
		return ErrNoTypes
	}
	sources := make(map[string]struct{}, len(f.Types))
	for i := range f.Types {
		d := &f.Types[i]
		d.Source = strings.TrimSpace(d.Source)
		if d.Source == "" {
			return fmt.Errorf("%w: types[%d]", ErrEmptySource, i)
		}
		if _, dup := sources[d.Source]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateSource, d.Source)
		}
		sources[d.Source] = struct{}{}

		seen := make(map[string]struct{}, len(d.Targets))
		for j, t := range d.Targets {
			t = strings.TrimSpace(t)
			if t == "" {
				return fmt.Errorf("%w: %s targets[%d]", ErrEmptyTarget, d.Source, j)
			}
			if _, dup := seen[t]; dup {
				return fmt.Errorf("%w: %s -> %s", ErrDuplicateTarget, d.Source, t)
			}
			seen[t] = struct{}{}
			d.Targets[j] = t
		}
	}
	return nil
}

func (f *File) importPath() string {
	if p := strings.TrimSpace(f.ImportPath); p != "" {
		return p
	}
	return DefaultImportPath
}

func (f *File) hasTargets() bool {
	for _, d := range f.Types {
		if len(d.Targets) > 0 {
			return true
		}
	}
	return false
}

var fileTpl = template.Must(template.New("file").Parse(`// Code generated by castgen. DO NOT EDIT.

package {{.F.Package}}

import (
	castx "{{.Path}}"
{{- if .Bind}}
	target "{{.Path}}/target"
{{- end}}
{{- range .F.Imports}}
	"{{.}}"
{{- end}}
)
{{if .Bind}}
var (
{{- range .F.Types}}{{$src := .Source}}{{range .Targets}}
	_ {{.}} = *new({{$src}})
{{- end}}{{end}}
)
{{end}}
func init() {
{{- range .F.Types}}{{$src := .Source}}
{{- if .Targets}}
	castx.MustRegister[{{$src}}](
{{- range .Targets}}
		target.MustBind[{{$src}}, {{.}}](),
{{- end}}
	)
{{- else}}
	castx.MustRegister[{{$src}}]()
{{- end}}
{{- end}}
}
`))

// Render produces the gofmt'ed Go source for f.
func Render(f *File) ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err := fileTpl.Execute(&buf, struct {
		F    *File
		Path string
		Bind bool
	}{F: f, Path: f.importPath(), Bind: f.hasTargets()})
	if err != nil {
		return nil, fmt.Errorf("castx(gen): render: %w", err)
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("castx(gen): format: %w", err)
	}
	return out, nil
}

// Generate parses data and renders it.
func Generate(data []byte) ([]byte, error) {
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Render(f)
}
