// Package config defines the scalar configuration surface this module
// consumes. The configuration parser and the CLI entry point that populate
// a Parameters value are external collaborators; this package defines only
// the struct they hand to the simulator and to treeseq, not how its fields
// get their values.
package config

import "github.com/arg-tools/treeseq/persist"

// Parameters is the scalar configuration a CLI collaborator gathers (from
// flags, a file, or both) and passes down to the coalescent simulator and
// to this module's mutation placement and persistence calls.
type Parameters struct {
	SampleSize   uint32
	NumLoci      uint32
	MutationRate float64
	Seed         uint64
	OutputPath   string
	Compression  persist.Compression
}
