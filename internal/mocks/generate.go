// Package mocks contains mock implementations of interfaces used in the sdjournal project.
// This file is not used for anything except generating mocks - it shouldn't be imported.
// Execute `go generate ./internal/mocks/generate.go` to regenerate all mocks.
package mocks

//go:generate go tool mockgen -destination=mock_native.go -package=mocks github.com/dynoinc/sdjournal/internal/native Buffer,Handle,Library
