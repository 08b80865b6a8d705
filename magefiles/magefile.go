//go:build mage

// Package main provides build targets for the shrub project using Mage.
//
// Usage:
//
//	mage build        Compile the shrub binary to bin/
//	mage install      Install shrub to GOPATH/bin
//	mage clean        Remove build artifacts
//	mage test:all     Run all tests
//	mage test:unit    Run tests without the race detector, skipping slow ones
//	mage test:race    Run all tests with the race detector
//	mage test:cover   Run all tests and write coverage.out
//	mage lint         Run golangci-lint
//	mage vet          Run go vet
//	mage stats        Print Go LOC per package
package main

const (
	binGo      = "go"
	binaryName = "shrub"
	binaryDir  = "bin"
	cmdDir     = "./cmd/shrub"
	modulePath = "github.com/mesh-intelligence/shrub"
)
