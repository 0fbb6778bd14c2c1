//go:build tools
// +build tools

// Package tools lists development tooling for this repo.
// Nothing here is a runtime dependency; install the tools globally with
// `go install` as needed.
package tools

// Live reload during development:
//
//	go install github.com/air-verse/air@v1.63.0
//
// Mock regeneration (see internal/mocks/generate.go):
//
//	go install go.uber.org/mock/mockgen@v0.6.0
