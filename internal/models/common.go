// internal/models/common.go
package models

// Enums
type OfferStatus string

const (
	OfferStatusPending   OfferStatus = "pending"
	OfferStatusAccepted  OfferStatus = "accepted"
	OfferStatusRejected  OfferStatus = "rejected"
	OfferStatusExpired   OfferStatus = "expired"
	OfferStatusCancelled OfferStatus = "cancelled"
)

// Terminal reports whether the status is final. A terminal offer never
// changes status again.
func (s OfferStatus) Terminal() bool {
	switch s {
	case OfferStatusAccepted, OfferStatusRejected, OfferStatusExpired, OfferStatusCancelled:
		return true
	}
	return false
}

type NFTStatus string

const (
	NFTStatusListed      NFTStatus = "listed"
	NFTStatusDelisted    NFTStatus = "delisted"
	NFTStatusTransferred NFTStatus = "transferred"
)

type OfferActionType string

const (
	OfferActionCreated   OfferActionType = "offer_created"
	OfferActionAccepted  OfferActionType = "offer_accepted"
	OfferActionRejected  OfferActionType = "offer_rejected"
	OfferActionCancelled OfferActionType = "offer_cancelled"
	OfferActionExpired   OfferActionType = "offer_expired"
)

type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusReviewed  ReportStatus = "reviewed"
	ReportStatusDismissed ReportStatus = "dismissed"
)

type ReportTargetType string

const (
	ReportTargetNFT  ReportTargetType = "nft"
	ReportTargetUser ReportTargetType = "user"
)

type WhitelistStatus string

const (
	WhitelistStatusPending  WhitelistStatus = "pending"
	WhitelistStatusApproved WhitelistStatus = "approved"
	WhitelistStatusRejected WhitelistStatus = "rejected"
)

type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusApproved VerificationStatus = "approved"
	VerificationStatusRejected VerificationStatus = "rejected"
)
