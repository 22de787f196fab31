// Package planner turns probed source metadata into encode and thumbnail
// specs. Everything here is pure: the same metadata and settings always
// produce the same spec, and no function touches the filesystem or spawns a
// process.
//
//   - PlanEncode: CRF tier, optional long-edge scale, optional fps cap (planner.go, quality.go)
//   - KeyframeInterval: AV1 GOP length (quality.go)
//   - PlanThumbnail: grid, trim and tile size by duration (thumbnail.go)
//
// The step functions live in ordered threshold tables (hevcQuality,
// av1Quality, gridTiers) rather than in conditionals.
package planner
