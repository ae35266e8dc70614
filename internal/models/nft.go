// internal/models/nft.go
package models

import "time"

// NFT is one record of the marketplace-wide list, the source of truth for
// listing status and ownership. Per-address indices (owned, hidden,
// delisted, burned) are derived from it.
type NFT struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Image           string    `json:"image,omitempty"`
	Category        string    `json:"category,omitempty"`
	Creator         string    `json:"creator"` // current owner wallet address
	Price           float64   `json:"price"`
	Status          NFTStatus `json:"status"`
	ContractAddress string    `json:"contract_address,omitempty"`
	TokenID         string    `json:"token_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// OwnedNFT is an entry of a wallet's holdings index. Transfer provenance is
// stamped on the entry when the NFT arrives from another wallet.
type OwnedNFT struct {
	NFT
	PreviousOwner string     `json:"previous_owner,omitempty"`
	TransferredAt *time.Time `json:"transferred_at,omitempty"`
}

// TransferRecord is one entry of the per-address transfer history, recorded
// under the sending wallet.
type TransferRecord struct {
	NFTID         string    `json:"nft_id"`
	FromAddress   string    `json:"from_address"`
	ToAddress     string    `json:"to_address"`
	TransferredAt time.Time `json:"transferred_at"`
}

// BurnRecord marks the permanent destruction of an NFT. Burn entries are
// never removed, so a burned id stays burned for as long as storage lives.
type BurnRecord struct {
	NFTID    string    `json:"nft_id"`
	Address  string    `json:"address"`
	BurnedAt time.Time `json:"burned_at"`
}
