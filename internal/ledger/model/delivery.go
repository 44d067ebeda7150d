// Package model defines domain models for the delivery ledger.
package model

// DeliveryRecord is a single delivery included in a block.
// GPS is a single-axis coordinate.
type DeliveryRecord struct {
	Sender string  `json:"sender"`
	Target string  `json:"target"`
	GPS    float64 `json:"gps"`
}
