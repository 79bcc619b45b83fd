//go:build stave

package main

import (
	"cmp"
	"fmt"
	"os"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b": Build,
	"t": Test.Default,
	"l": Lint.Default,
	"c": Check,
	"i": Install,
}

// Namespace types group related targets.
type (
	Test st.Namespace
	Lint st.Namespace
)

// Build compiles the mdtool binary with version info.
// Skips recompilation when source files have not changed.
func Build() error {
	rebuild, err := target.Dir("bin/mdtool", "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println("bin/mdtool is up to date")
		return nil
	}
	fmt.Println("Building mdtool...")
	return sh.RunV("go", "build", "-o", "bin/mdtool", "./cmd/mdtool")
}

// Check runs format, lint, and test sequentially.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build artifacts.
func Clean() error {
	fmt.Println("Cleaning build artifacts...")
	if err := sh.Rm("bin"); err != nil {
		return err
	}
	return sh.Rm("coverage.out")
}

// Install installs mdtool to $GOBIN or $GOPATH/bin.
func Install() error {
	fmt.Println("Installing mdtool...")
	return sh.RunV("go", "install", "./cmd/mdtool")
}

// Default runs all tests using gotestsum with race detection and coverage.
func (Test) Default() error {
	fmt.Println("Running tests...")
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", "pkgname-and-test-fails",
		"--",
		"-race",
		"-p", nCores,
		"-parallel", nCores,
		"./...",
		"-coverprofile=coverage.out",
		"-covermode=atomic",
	)
}

// Fuzz runs the parser fuzz targets briefly.
func (Test) Fuzz() error {
	fmt.Println("Fuzzing parser...")
	return sh.RunV("go", "test", "-fuzz=FuzzParse", "-fuzztime=30s", "./pkg/parser")
}

// Default runs the linter.
func (Lint) Default() error {
	fmt.Println("Linting...")
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go source files.
func (Lint) Fmt() error {
	fmt.Println("Formatting...")
	return sh.RunV("gofmt", "-w", ".")
}
