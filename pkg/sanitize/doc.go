// Package sanitize turns loosely typed raw records into enriched records the
// directive processor can trust: free text is escaped, URLs are vetted,
// missing fields are defaulted and computed fields are derived. Sanitising
// never fails; anomalies are reported as warnings.
package sanitize
