// Package model provides the record and event types shared by every
// other internal package.
//
// This package contains type definitions, envelope decoding, and
// serialization only. All other internal packages import model; model
// imports nothing internal. This keeps it the foundational layer with
// no circular dependencies.
//
// Key design constraints:
//   - Stream payloads are typed per stream kind (tagged union), never
//     dynamic map lookups
//   - Records carry their raw timestamp string; rules parse what they
//     consume, so a malformed timestamp fails exactly one rule
//   - Event JSON field order is fixed per event kind, so identical
//     input yields byte-identical output
package model
