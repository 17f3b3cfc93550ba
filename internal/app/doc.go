// Package app wires application dependencies for the CLI.
//
// It resolves Config from flags, environment and optional .env files, then
// builds the concrete state store (file, memory, optionally sealed), key
// material provider, key model, HTTP transport, authenticator and auction
// service, exposing them via the Wire struct for commands to use.
package app
