//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Downloads the modules and builds every package.
func (Build) All() error {
	if err := runGo([]string{"mod", "download"}, quiet()); err != nil {
		return err
	}
	return runGo([]string{"build", "./..."})
}

// Runs go vet over every package.
func (Build) Vet() error {
	return runGo([]string{"vet", "./..."})
}
