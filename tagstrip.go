// Package tagstrip strips configured HTML tags from batches of HTML and
// text files. It parses markup leniently, removes matching elements
// (with or without their content), and writes the result back, reporting
// per-file outcomes and incremental progress.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, yaml/).
package tagstrip
