// internal/models/offer.go
package models

import "time"

// Offer is a proposal by one wallet to buy a specific NFT from its current
// owner at the proposed price. Offers start out pending and end in exactly
// one terminal status.
type Offer struct {
	ID                 string      `json:"id"`
	NFTID              string      `json:"nft_id"`
	NFTTitle           string      `json:"nft_title"`
	NFTImage           string      `json:"nft_image,omitempty"`
	NFTContractAddress string      `json:"nft_contract_address,omitempty"`
	NFTTokenID         string      `json:"nft_token_id,omitempty"`
	OfferAmount        float64     `json:"offer_amount"`
	OfferAmountUSD     float64     `json:"offer_amount_usd,omitempty"` // display value, not authoritative
	FromAddress        string      `json:"from_address"`
	ToAddress          string      `json:"to_address"`
	Status             OfferStatus `json:"status"`
	Message            string      `json:"message,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
	ExpiresAt          time.Time   `json:"expires_at"`
	AcceptedAt         *time.Time  `json:"accepted_at,omitempty"`
	RejectedAt         *time.Time  `json:"rejected_at,omitempty"`
}

// OfferAction is one row of the append-only offer audit log. The log feeds
// admin views only; authorization decisions never consult it.
type OfferAction struct {
	ID          string          `json:"id"`
	Type        OfferActionType `json:"type"`
	OfferID     string          `json:"offer_id"`
	NFTID       string          `json:"nft_id"`
	FromAddress string          `json:"from_address"`
	ToAddress   string          `json:"to_address"`
	Amount      float64         `json:"amount"`
	Timestamp   time.Time       `json:"timestamp"`
}
