// Package unfurl extracts normalized link metadata (title, description,
// image, canonical URL, author) from arbitrary URLs. It reconciles several
// strategies behind one contract: a generic Open Graph / meta-tag reader,
// per-site specialized extractors, vendor JSON APIs for platforms that block
// anonymous scraping, and a remote rendering fallback for pages behind
// bot mitigation.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/).
package unfurl
