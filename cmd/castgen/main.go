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

// Command castgen generates cast table registrations from a declarative
// YAML file:
//
//	castgen -o zz_cast_tables.go casts.yaml
//
// Typically invoked from a go:generate directive next to the types.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"dirpx.dev/castx/internal/gen"
)

type cli struct {
	Input      string `arg:"" help:"Declaration file (YAML or JSON)" type:"existingfile"`
	Output     string `short:"o" help:"Output Go file; stdout when empty" type:"path"`
	Package    string `help:"Override the package name of the generated file"`
	ImportPath string `name:"castx" help:"Override the castx import path" env:"CASTX_IMPORT_PATH"`
	Verbose    bool   `short:"v" help:"Log at debug level"`
}

func main() {
	var params cli
	ctx := kong.Parse(&params,
		kong.Name("castgen"),
		kong.Description("Generate castx table registrations from declarations."),
	)

	level := slog.LevelInfo
	if params.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx.FatalIfErrorf(run(params))
}

func run(params cli) error {
	data, err := os.ReadFile(params.Input)
	if err != nil {
		return err
	}
	f, err := gen.Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", params.Input, err)
	}
	if params.Package != "" {
		f.Package = params.Package
	}
	if params.ImportPath != "" {
		f.ImportPath = params.ImportPath
	}
	slog.Debug("Parsed declarations", slog.String("input", params.Input), slog.Int("types", len(f.Types)))

	out, err := gen.Render(f)
	if err != nil {
		return err
	}
	if params.Output == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(params.Output, out, 0o644); err != nil {
		return err
	}
	slog.Info("Wrote cast tables", slog.String("output", params.Output), slog.String("package", f.Package), slog.Int("types", len(f.Types)))
	return nil
}
