// Package webtab fetches a single web page, rendering it in a headless
// browser when possible, and extracts tabular data from it using one of a
// small set of strategies: all tables, headings, the first table row, or a
// custom CSS selector.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, sqlite/).
package webtab
