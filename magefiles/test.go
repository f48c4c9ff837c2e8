//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs every test with the race detector, which needs cgo.
func (Test) All() error {
	return runGo([]string{"test", "-race", "./..."}, withEnv("CGO_ENABLED=1"))
}

// Runs the tests of the mesh package only.
func (Test) Mesh() error {
	return runGo([]string{"test", "-v", "."}, inDir("engine/mesh"))
}
