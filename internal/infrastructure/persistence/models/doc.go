// Package models contains GORM persistence models for the back-office
// tables. Domain records stay free of ORM tags; each model converts with
// ToDomain and FromDomain.
//
// Structure:
//   - base.go: shared identity and header columns
//   - record.go: sessions, contracts with payments, daily reports with visits, expenses
//   - reference.go: units and payment methods
package models
