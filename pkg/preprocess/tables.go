package preprocess

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/coelute/coelute/pkg/core"
)

// ColumnMap names the input columns of the SEC calibration and peptide
// quantification files. It replaces positional column configuration
// with an explicit mapping validated against the header before any row
// is read.
type ColumnMap struct {
	RunID            string
	SecID            string
	SecMW            string
	ConditionID      string
	ReplicateID      string
	ProteinID        string
	PeptideID        string
	PeptideIntensity string
}

// DefaultColumnMap matches the canonical column names.
func DefaultColumnMap() ColumnMap {
	return ColumnMap{
		RunID:            "run_id",
		SecID:            "sec_id",
		SecMW:            "sec_mw",
		ConditionID:      "condition_id",
		ReplicateID:      "replicate_id",
		ProteinID:        "protein_id",
		PeptideID:        "peptide_id",
		PeptideIntensity: "peptide_intensity",
	}
}

// resolve maps the wanted column names to header positions, failing
// fast on any missing column.
func resolve(header []string, wanted ...string) (map[string]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.TrimSpace(h)] = i
	}
	out := make(map[string]int, len(wanted))
	for _, w := range wanted {
		i, ok := pos[w]
		if !ok {
			return nil, fmt.Errorf("required column %q not found in header %v", w, header)
		}
		out[w] = i
	}
	return out, nil
}

// newTableReader sniffs the delimiter (tab or comma) from the first
// line and returns a CSV reader over the whole input.
func newTableReader(r io.Reader) (*csv.Reader, error) {
	br := bufio.NewReader(r)
	peek, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read table header: %w", err)
	}
	firstLine := string(peek)
	if i := strings.IndexByte(firstLine, '\n'); i >= 0 {
		firstLine = firstLine[:i]
	}

	cr := csv.NewReader(br)
	if strings.Contains(firstLine, "\t") {
		cr.Comma = '\t'
	}
	cr.TrimLeadingSpace = true
	return cr, nil
}

// ReadFractions parses the SEC calibration table.
func ReadFractions(r io.Reader, cm ColumnMap) ([]core.SecFraction, error) {
	cr, err := newTableReader(r)
	if err != nil {
		return nil, err
	}
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read SEC header: %w", err)
	}
	cols, err := resolve(header, cm.RunID, cm.SecID, cm.SecMW, cm.ConditionID, cm.ReplicateID)
	if err != nil {
		return nil, fmt.Errorf("SEC file: %w", err)
	}

	var out []core.SecFraction
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read SEC line %d: %w", line+1, err)
		}
		line++

		secID, err := strconv.Atoi(strings.TrimSpace(rec[cols[cm.SecID]]))
		if err != nil {
			return nil, fmt.Errorf("SEC line %d: invalid sec_id %q", line, rec[cols[cm.SecID]])
		}
		secMW, err := strconv.ParseFloat(strings.TrimSpace(rec[cols[cm.SecMW]]), 64)
		if err != nil {
			return nil, fmt.Errorf("SEC line %d: invalid sec_mw %q", line, rec[cols[cm.SecMW]])
		}

		f := core.SecFraction{
			RunID:       rec[cols[cm.RunID]],
			SecID:       secID,
			SecMW:       secMW,
			ConditionID: rec[cols[cm.ConditionID]],
			ReplicateID: rec[cols[cm.ReplicateID]],
		}
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("SEC line %d: %w", line, err)
		}
		out = append(out, f)
	}
	return out, nil
}

// ReadQuantifications parses one peptide quantification table. Rows
// referencing runs absent from the SEC calibration are dropped.
func ReadQuantifications(r io.Reader, cm ColumnMap, validRuns mapset.Set[string]) ([]core.Quantification, error) {
	cr, err := newTableReader(r)
	if err != nil {
		return nil, err
	}
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read quantification header: %w", err)
	}
	cols, err := resolve(header, cm.RunID, cm.ProteinID, cm.PeptideID, cm.PeptideIntensity)
	if err != nil {
		return nil, fmt.Errorf("quantification file: %w", err)
	}

	var out []core.Quantification
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read quantification line %d: %w", line+1, err)
		}
		line++

		runID := rec[cols[cm.RunID]]
		if !validRuns.Contains(runID) {
			continue
		}
		intensity, err := strconv.ParseFloat(strings.TrimSpace(rec[cols[cm.PeptideIntensity]]), 64)
		if err != nil {
			return nil, fmt.Errorf("quantification line %d: invalid peptide_intensity %q", line, rec[cols[cm.PeptideIntensity]])
		}

		q := core.Quantification{
			RunID:            runID,
			ProteinID:        rec[cols[cm.ProteinID]],
			PeptideID:        rec[cols[cm.PeptideID]],
			PeptideIntensity: intensity,
		}
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("quantification line %d: %w", line, err)
		}
		out = append(out, q)
	}
	return out, nil
}
