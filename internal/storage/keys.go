// internal/storage/keys.go
package storage

import "strings"

// Logical keys of the marketplace state. Collections are stored whole: every
// mutation is a read-modify-write of the full JSON array under one key.
const (
	KeyOffers       = "marketplace_offers"
	KeyOfferActions = "offer_actions_log"
	KeyNFTs         = "marketplace_nfts"
	KeyReports      = "marketplace_reports"
	KeyWhitelist    = "marketplace_whitelist"
	KeyVerification = "verification_requests"

	// KeyNFTsMirror is a compatibility key still read by legacy consumers.
	// Writes to KeyNFTs are mirrored here.
	KeyNFTsMirror = "nfts"
)

// Per-address index key prefixes. The address part is always lowercased so
// that mixed-case wallet addresses map to one key.
const (
	PrefixOwnedNFTs       = "user_nfts:"
	PrefixHiddenNFTs      = "hidden_nfts:"
	PrefixDelistedNFTs    = "delisted_nfts:"
	PrefixBurnedNFTs      = "burned_nfts:"
	PrefixTransferHistory = "transfer_history:"
	PrefixFavorites       = "favorites:"
)

func OwnedNFTsKey(address string) string       { return PrefixOwnedNFTs + strings.ToLower(address) }
func HiddenNFTsKey(address string) string      { return PrefixHiddenNFTs + strings.ToLower(address) }
func DelistedNFTsKey(address string) string    { return PrefixDelistedNFTs + strings.ToLower(address) }
func BurnedNFTsKey(address string) string      { return PrefixBurnedNFTs + strings.ToLower(address) }
func TransferHistoryKey(address string) string { return PrefixTransferHistory + strings.ToLower(address) }
func FavoritesKey(address string) string       { return PrefixFavorites + strings.ToLower(address) }
