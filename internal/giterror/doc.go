// Package giterror provides error inspection capabilities for GitHub API errors.
// Errors returned by the GraphQL client are passed through unchanged; this
// package only classifies them, which the CLI uses to choose an exit code.
package giterror
