// Package pagedigest turns a single HTML page into a structured digest: a
// title, an extractive summary, ranked key points, candidate action items
// and page metadata.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package pagedigest
