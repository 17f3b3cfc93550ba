// Package devserver is an in-memory auction server speaking the same wire
// contract as the production service. It exists for local runs of the CLI
// and for end-to-end tests of the client stack.
//
// HTTP API
//
//	GET  /auth/public-key    {"e": <int>, "n": <int>}
//	POST /auth/register      Credentials with username/password encrypted
//	                         under the server key
//	POST /auth/login         same payload; returns {access_token, token_type}
//	GET  /get-balance        signed {balance}
//	POST /balance            envelope {amount}
//	POST /create-auction     envelope {title, description, price, timestamp}
//	POST /list-auctions      open; signed list of auctions
//	POST /get-auction        envelope {auction_id}
//	POST /delete-auction     envelope {auction_id}; plain JSON response
//	POST /bid                envelope {auction_id, price}
//	POST /cancel-bid         envelope {bid_id}
//	POST /update-price       envelope {auction_id}
//
// Behaviour
//
//   - Every route except the key, register, login and list routes requires
//     a bearer JWT (HS256) issued by /auth/login.
//   - Envelopes are verified against the public key the user registered.
//   - Responses are {"message": <compact sorted JSON>, "signature": <decimal>}
//     signed with the server private key. A message too large for the
//     modulus goes out with an empty signature.
//   - Errors are {"detail": {"status": "ERROR", "code": N, "message": ...}}.
//   - All state is held in memory and lost on process exit.
package devserver
