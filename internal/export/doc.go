// Package export renders grouped ledger rows into their two tabular
// shapes: CSV for spreadsheets and a fixed-layout sign-in sheet for
// printing. Both consume only the flat 10-field row contract from the
// engine; nothing here re-derives intervals.
package export
