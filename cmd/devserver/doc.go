// Command devserver runs the in-memory auction server for local use of the
// auctionauth CLI. See package internal/devserver for the HTTP API.
//
// The server key pair is generated at startup unless --key-file names a PEM
// or JSON key pair. The session token secret is random per process unless
// --token-secret is given, so tokens do not survive a restart.
package main
