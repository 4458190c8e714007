//go:build mage
// +build mage

package main

import (
	"context"
	"log"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Build mg.Namespace
type Test mg.Namespace

// Default target to run when none is specified
var Default = Build.Local

func sheetproxyCmd() error {
	os.Setenv("CGO_ENABLED", "0")
	log.Printf("Building...")
	return sh.RunV("go", "build", "-o", "bin/sheetproxy", "./cmd/sheetproxy")
}

func (Build) Local(ctx context.Context) {
	mg.Deps(
		Clean,
		sheetproxyCmd)
}

func (Build) CI(ctx context.Context) {
	mg.Deps(
		Build.Lint,
		Test.Verbose,
		Clean,
		sheetproxyCmd)
}

// Run linter against codebase
func (Build) Lint() error {
	log.Printf("Linting...")
	return sh.RunV("golangci-lint", "run", "./pkg/...", "./cmd/...")
}

func testVerbose() error {
	log.Printf("Testing...")
	return sh.RunV("go", "test", "-v", "./pkg/...")
}

func test() error {
	log.Printf("Testing...")
	return sh.RunV("go", "test", "./pkg/...")
}

// Run tests in verbose mode
func (Test) Verbose() {
	mg.Deps(
		testVerbose,
	)
}

// Run tests in normal mode
func (Test) Default() {
	mg.Deps(
		test,
	)
}

// Clean removes built files
func Clean() error {
	log.Printf("Cleaning all")
	return os.RemoveAll("./bin")
}

// Build and run the service locally
func Run() error {
	mg.Deps(Build.Local)
	return sh.RunV("./bin/sheetproxy")
}
