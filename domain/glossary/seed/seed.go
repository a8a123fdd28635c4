// Package seed provides the bundled glossary dataset loaded at process start.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"glossary-backend/domain/glossary"
	apperrors "glossary-backend/pkg/errors"
)

//go:embed glossary_seed.json
var embedded []byte

// document is the on-disk shape shared by the seed file and the persistence
// collaborator.
type document struct {
	Glossary []glossary.Term `json:"glossary"`
}

// Embedded returns the bundled seed dataset.
func Embedded() ([]glossary.Term, error) {
	return parse(embedded)
}

// FromFile reads a seed dataset from an external JSON file.
func FromFile(path string) ([]glossary.Term, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewMalformedSeed(
			fmt.Sprintf("failed to read seed file %s", path)).WithCause(err)
	}
	return parse(data)
}

func parse(data []byte) ([]glossary.Term, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.NewMalformedSeed("seed data is not valid JSON").WithCause(err)
	}
	return doc.Glossary, nil
}
