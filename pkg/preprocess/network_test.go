package preprocess

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/coelute/coelute/pkg/core"
)

func TestReadNetwork(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		minConfidence float64
		want          []core.NetworkEdge
		wantErr       bool
	}{
		{
			name:  "two columns default confidence",
			input: "P1 P2\nP2 P3\n",
			want: []core.NetworkEdge{
				{BaitID: "P1", PreyID: "P2", Confidence: 1},
				{BaitID: "P2", PreyID: "P3", Confidence: 1},
			},
		},
		{
			name:  "string scores normalized",
			input: "protein1 protein2 combined_score\nP1 P2 900\nP2 P3 150\n",
			want: []core.NetworkEdge{
				{BaitID: "P1", PreyID: "P2", Confidence: 0.9},
				{BaitID: "P2", PreyID: "P3", Confidence: 0.15},
			},
		},
		{
			name:  "fractional confidence kept as is",
			input: "P1\tP2\t0.75\n",
			want: []core.NetworkEdge{
				{BaitID: "P1", PreyID: "P2", Confidence: 0.75},
			},
		},
		{
			name:          "confidence filter",
			input:         "P1 P2 900\nP2 P3 150\n",
			minConfidence: 0.5,
			want: []core.NetworkEdge{
				{BaitID: "P1", PreyID: "P2", Confidence: 0.9},
			},
		},
		{
			name:  "comments and blank lines skipped",
			input: "# STRING v12 export\n\nP1 P2\n",
			want: []core.NetworkEdge{
				{BaitID: "P1", PreyID: "P2", Confidence: 1},
			},
		},
		{
			name:    "invalid confidence past the header",
			input:   "P1 P2 900\nP2 P3 high\n",
			wantErr: true,
		},
		{
			name:    "too few columns",
			input:   "P1 P2\nP3\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadNetwork(strings.NewReader(tt.input), tt.minConfidence)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("network mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
