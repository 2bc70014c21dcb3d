// Package cli implements stackctl, a terminal companion to the grid viewer.
//
// Commands:
//   - catalog: list the templates of a catalog document in match order
//   - parse: group a height-map layout file and report every structure
//
// All commands accept --verbose (-v) for debug logging. The logger travels
// through context.Context.
package cli
