package preprocess

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/coelute/coelute/pkg/core"
)

// ReadNetwork parses a STRING-style interaction file: whitespace- or
// tab-separated lines of bait id, prey id, and an optional confidence
// column. STRING combined scores on the 0..1000 scale are normalized
// to [0,1]; a missing column means confidence 1. A header line and
// comment lines are skipped. Edges below minConfidence are dropped.
func ReadNetwork(r io.Reader, minConfidence float64) ([]core.NetworkEdge, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var out []core.NetworkEdge
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("network line %d: expected at least 2 columns, got %d", lineNum, len(fields))
		}

		confidence := 1.0
		if len(fields) >= 3 {
			v, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				if lineNum == 1 {
					// Header line.
					continue
				}
				return nil, fmt.Errorf("network line %d: invalid confidence %q", lineNum, fields[2])
			}
			if v > 1 {
				v /= 1000
			}
			confidence = v
		}

		if confidence < minConfidence {
			continue
		}
		out = append(out, core.NetworkEdge{
			BaitID:     fields[0],
			PreyID:     fields[1],
			Confidence: confidence,
			Label:      core.Target,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read network file: %w", err)
	}
	return out, nil
}
