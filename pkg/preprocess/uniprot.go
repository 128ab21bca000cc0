// Package preprocess implements the import layer: reference and
// quantification file parsing, metadata derivation, and construction of
// the candidate interaction universe including decoys.
package preprocess

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/coelute/coelute/pkg/core"
)

// uniprotEntry captures the fields of one UniProt XML entry the
// pipeline needs: accession, entry name, and sequence mass.
type uniprotEntry struct {
	Accessions []string `xml:"accession"`
	Name       string   `xml:"name"`
	Sequence   struct {
		Mass float64 `xml:"mass,attr"`
	} `xml:"sequence"`
}

// ReadUniProt streams a UniProt XML file into protein catalog rows.
// The first accession becomes the protein id; the sequence mass
// (Dalton) is converted to kDa. Entries without accession or mass are
// skipped.
func ReadUniProt(r io.Reader) ([]core.Protein, error) {
	dec := xml.NewDecoder(r)

	var out []core.Protein
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse UniProt XML: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "entry" {
			continue
		}

		var entry uniprotEntry
		if err := dec.DecodeElement(&entry, &start); err != nil {
			return nil, fmt.Errorf("failed to decode UniProt entry: %w", err)
		}
		if len(entry.Accessions) == 0 || entry.Sequence.Mass <= 0 {
			continue
		}
		out = append(out, core.Protein{
			ProteinID:   entry.Accessions[0],
			ProteinName: entry.Name,
			ProteinMW:   entry.Sequence.Mass / 1000,
		})
	}
	return out, nil
}
