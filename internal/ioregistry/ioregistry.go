// Package ioregistry loads the NISTIR taxonomy registry. The default
// UNIFORMAT II label map ships embedded in the binary; a replacement
// file can be given via configuration for taxonomies maintained
// outside the repository.
package ioregistry

import (
	_ "embed"
	"os"

	"github.com/gnames/gnfmt"
	"github.com/usnistgov/NED/pkg/nistir"
)

//go:embed nistir_labels.json
var labelsJSON []byte

// Load builds the taxonomy registry. With an empty path the embedded
// label map is used; otherwise the given JSON file replaces it. Any
// failure here is fatal to the caller: nothing downstream can validate
// component identifiers without the registry.
func Load(path string) (*nistir.Registry, error) {
	data := labelsJSON
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, UnavailableError(path, err)
		}
	}

	enc := gnfmt.GNjson{}
	var labels map[string]string
	if err := enc.Decode(data, &labels); err != nil {
		return nil, ParseError(path, err)
	}

	reg, err := nistir.New(labels)
	if err != nil {
		return nil, ClosureError(path, err)
	}

	return reg, nil
}
