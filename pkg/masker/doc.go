// Package masker redacts personally identifiable and tax-sensitive values
// (emails, phone numbers, GSTINs, PANs, vendor codes) from free-form log
// text and JSON payloads before they reach log output.
package masker
