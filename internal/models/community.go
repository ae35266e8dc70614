// internal/models/community.go
package models

import "time"

// Favorite is one entry of a wallet's favorites index.
type Favorite struct {
	NFTID   string    `json:"nft_id"`
	AddedAt time.Time `json:"added_at"`
}

// Report is a user complaint against an NFT or another wallet, resolved by
// an admin.
type Report struct {
	ID              string           `json:"id"`
	ReporterAddress string           `json:"reporter_address"`
	TargetType      ReportTargetType `json:"target_type"`
	TargetID        string           `json:"target_id"`
	Reason          string           `json:"reason"`
	Details         string           `json:"details,omitempty"`
	Status          ReportStatus     `json:"status"`
	CreatedAt       time.Time        `json:"created_at"`
	ReviewedAt      *time.Time       `json:"reviewed_at,omitempty"`
	ReviewedBy      string           `json:"reviewed_by,omitempty"`
	ResolutionNote  string           `json:"resolution_note,omitempty"`
}

// WhitelistEntry gates marketplace participation for one wallet.
type WhitelistEntry struct {
	Address     string          `json:"address"`
	Status      WhitelistStatus `json:"status"`
	Note        string          `json:"note,omitempty"`
	RequestedAt time.Time       `json:"requested_at"`
	ReviewedAt  *time.Time      `json:"reviewed_at,omitempty"`
	ReviewedBy  string          `json:"reviewed_by,omitempty"`
}

// VerificationRequest is a creator's application for a verified badge.
type VerificationRequest struct {
	ID          string             `json:"id"`
	Address     string             `json:"address"`
	DisplayName string             `json:"display_name"`
	Links       []string           `json:"links,omitempty"`
	Status      VerificationStatus `json:"status"`
	SubmittedAt time.Time          `json:"submitted_at"`
	ReviewedAt  *time.Time         `json:"reviewed_at,omitempty"`
	ReviewedBy  string             `json:"reviewed_by,omitempty"`
	Note        string             `json:"note,omitempty"`
}
