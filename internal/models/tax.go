package models

import "time"

// TaxAmount is the periodic road tax for one plate in one jurisdiction.
// Found distinguishes a confirmed amount from "the lookup had no row for
// this jurisdiction": in both cases MonthlyAmount may be zero, but only a
// found zero is a confirmed zero.
type TaxAmount struct {
	Plate         string    `json:"plate" bson:"plate"`
	Jurisdiction  string    `json:"jurisdiction" bson:"jurisdiction"`
	MonthlyAmount float64   `json:"monthly_amount" bson:"monthly_amount"`
	Found         bool      `json:"found" bson:"found"`
	FetchedAt     time.Time `json:"fetched_at" bson:"fetched_at"`
}
