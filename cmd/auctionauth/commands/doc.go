// Package commands defines the auctionauth CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - server-key     Show (or --refresh) the cached server public key
//   - identity       Print our public key and fingerprint
//   - register       Create an account; credentials travel encrypted
//   - login          Obtain and store a session token
//   - logout         Forget the session token
//   - status         Show session, key policy and state location
//   - balance        Print the account balance
//   - add-balance    Credit the account (signed)
//   - auction        create | list | get | delete
//   - bid            place | cancel | price
//
// # Implementation
//
// The root command resolves configuration (flags, then environment, then
// .env files under --home and the working directory) and builds the
// dependency graph before any subcommand runs. State lives in
// <home>/state.json unless --ephemeral is set; --passphrase seals it.
package commands
