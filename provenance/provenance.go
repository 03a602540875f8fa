// Package provenance records how a tree sequence or its mutations came to
// be: which program produced them and with what parameters. It replaces
// msprime's hand-rolled snprintf JSON builders (lib/tree_sequence.c's
// environment/parameters attribute writers) with the standard library's
// encoding/json, since there is no structural reason here to hand-roll a
// serialiser the standard library already does correctly.
package provenance

import "encoding/json"

// Record is one provenance entry: free-form, versioned metadata attached
// to a group (trees or mutations) in a persisted container.
type Record struct {
	Software   string            `json:"software"`
	Version    string            `json:"version"`
	Parameters map[string]string `json:"parameters,omitempty"`
}

// Encode serialises r to its canonical JSON string, the form written into
// a persisted container's string attributes.
func Encode(r Record) (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode parses a provenance string previously produced by Encode. An
// empty string decodes to the zero Record.
func Decode(s string) (Record, error) {
	if s == "" {
		return Record{}, nil
	}
	var r Record
	if err := json.Unmarshal([]byte(s), &r); err != nil {
		return Record{}, err
	}
	return r, nil
}
