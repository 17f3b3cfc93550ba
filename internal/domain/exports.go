package domain

import (
	interfaces "auctionauth/internal/domain/interfaces"
	types "auctionauth/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Username    = types.Username
	Fingerprint = types.Fingerprint
	StateSlot   = types.StateSlot
	TrustPolicy = types.TrustPolicy
	KeyHalf     = types.KeyHalf
	KeyPair     = types.KeyPair
	Envelope    = types.Envelope
	Request     = types.Request
	Call        = types.Call
	Credentials = types.Credentials
	ErrorDetail = types.ErrorDetail
	Auction     = types.Auction
	Bid         = types.Bid
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	ClientStateStore    = interfaces.ClientStateStore
	KeyMaterialProvider = interfaces.KeyMaterialProvider
	Transport           = interfaces.Transport
	Cipher              = interfaces.Cipher
	KeyModel            = interfaces.KeyModel
	Authenticator       = interfaces.Authenticator
)

// Re-exported constants.
const (
	SlotServerKey   = types.SlotServerKey
	SlotToken       = types.SlotToken
	TrustOnFirstUse = types.TrustOnFirstUse
	Pinned          = types.Pinned
)
