//go:build stave

package main

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const binary = "bin/gomobiledoc"

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":    Build,
	"t":    Test.Default,
	"l":    Lint.Default,
	"c":    Check,
	"i":    Install,
	"fmt":  Lint.Fmt,
	"fuzz": Bench.Fuzz,
}

// Namespace types group related targets.
type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// encoderPackages are the packages that define the wire output. Changes
// there are checked with Test.Encoder before the slower full suite.
var encoderPackages = []string{"./pkg/post/...", "./pkg/mobiledoc/...", "./pkg/codec/...", "./pkg/wire/..."}

// Build compiles the gomobiledoc binary with version info, skipping the
// build when no source changed.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	fmt.Println("Building gomobiledoc...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, "./cmd/gomobiledoc")
}

// Check formats, lints and tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Encoder, Test.Default)
}

// Clean removes build and coverage artifacts.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Install installs gomobiledoc to $GOBIN or $GOPATH/bin.
func Install() error {
	fmt.Println("Installing gomobiledoc...")
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/gomobiledoc")
}

// Default runs every test with race detection and coverage.
func (Test) Default() error {
	fmt.Println("Running tests...")
	return gotestsum("pkgname-and-test-fails", "-race", "./...", "-coverprofile=coverage.out", "-covermode=atomic")
}

// Encoder runs the tests of the packages that shape the wire document.
func (Test) Encoder() error {
	fmt.Println("Running encoder tests...")
	return gotestsum("testname", append([]string{"-count=1"}, encoderPackages...)...)
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	fmt.Println("Running linters...")
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// Gate runs the checks CI requires, none of which modify the tree.
func (CI) Gate() error {
	st.SerialDeps(CI.Fmt, CI.Lint, Build, Test.Default, CI.ModTidy, CI.Cross)
	fmt.Println("✓ CI gate passed")
	return nil
}

// Fmt fails when any file is not gofmt-clean.
func (CI) Fmt() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s", out)
	}
	return nil
}

// Lint runs go vet and golangci-lint without fixes.
func (CI) Lint() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	return sh.RunV("golangci-lint", "run", "./...")
}

// ModTidy fails when go mod tidy would change go.mod or go.sum.
func (CI) ModTidy() error {
	before, err := readModFiles()
	if err != nil {
		return err
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	after, err := readModFiles()
	if err != nil {
		return err
	}
	if !bytes.Equal(before, after) {
		return errors.New("go.mod or go.sum changed after go mod tidy")
	}
	return nil
}

// Cross builds every release platform with cgo disabled.
func (CI) Cross() error {
	for _, platform := range []string{
		"linux/amd64", "linux/arm64",
		"darwin/amd64", "darwin/arm64",
		"windows/amd64", "freebsd/amd64",
	} {
		goos, goarch, _ := strings.Cut(platform, "/")
		fmt.Println("  building", platform)
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, "./cmd/gomobiledoc"); err != nil {
			return fmt.Errorf("build %s: %w", platform, err)
		}
	}
	return nil
}

// Default runs Go benchmarks.
func (Bench) Default() error {
	return gotestsum("pkgname-and-test-fails", "-run=^$", "-bench=.", "-benchmem", "./...")
}

// Fuzz runs each fuzz target for FUZZ_TIME (default 30s).
func (Bench) Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("FUZZ_TIME"), "30s")
	targets := []struct{ pkg, name string }{
		{"./pkg/parser/goldmark", "FuzzParse"},
		{"./pkg/fsutil", "FuzzWriteThenRead"},
	}
	for _, t := range targets {
		fmt.Printf("Fuzzing %s %s for %s...\n", t.pkg, t.name, fuzzTime)
		if err := sh.RunV("go", "test", "-run=^$", "-fuzz=^"+t.name+"$", "-fuzztime="+fuzzTime, t.pkg); err != nil {
			return fmt.Errorf("fuzz %s: %w", t.name, err)
		}
	}
	return nil
}

// Sample renders the repository README to stdout in every wire format as a
// smoke test of the built binary.
func (Bench) Sample() error {
	st.Deps(Build)
	for _, args := range [][]string{
		{"--format", "json", "--indent", "2"},
		{"--format", "cbor", "--compression", "zstd"},
		{"--format", "cbor", "--compression", "lz4"},
		{"--format", "json", "--compression", "xz"},
	} {
		cmdArgs := append([]string{"render", "README.md", "--stdout"}, args...)
		out, err := sh.Output(binary, cmdArgs...)
		if err != nil {
			return fmt.Errorf("render %v: %w", args, err)
		}
		fmt.Printf("  %-40s %6d bytes\n", strings.Join(args, " "), len(out))
	}
	return nil
}

// gotestsum runs go test through the gotestsum tool with the given format.
func gotestsum(format string, args ...string) error {
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	cmdArgs := append([]string{"tool", "gotestsum", "-f", format, "--", "-p", nCores, "-parallel", nCores}, args...)
	return sh.RunV("go", cmdArgs...)
}

func readModFiles() ([]byte, error) {
	var buf bytes.Buffer
	for _, name := range []string{"go.mod", "go.sum"} {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		buf.Write(data)
	}
	return buf.Bytes(), nil
}

// gitOutput runs a git command and returns trimmed stdout, or empty on error.
func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags returns the linker flags for version injection.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s", version, commit, date)
}
