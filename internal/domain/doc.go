// Package domain defines the data models, error kinds and interfaces shared
// across the auction client. It contains plain types (wire/state) and
// contracts (interfaces) only; behaviour lives in crypto, store, transport and
// the services packages.
package domain
