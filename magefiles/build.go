//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the geomtool binary into bin/.
func (Build) Tool() error {
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/geomtool", "./cmd/geomtool"), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs go mod tidy.
func (Build) Tidy() error {
	if _, err := executeCmd("go", withArgs("mod", "tidy"), withStream()); err != nil {
		return err
	}
	return nil
}
