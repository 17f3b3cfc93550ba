// Package auction exposes the auction server's routes as typed operations on
// top of the request authenticator.
//
// Each operation picks the protection the server expects for its route:
// register and login encrypt the credentials under the server key; balance,
// auction and bid actions are signed and need a session; listing auctions is
// open. Responses usually come wrapped as {"message": "<json>", "signature":
// "..."} and are unwrapped with Message before decoding.
package auction
