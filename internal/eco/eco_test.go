package eco

import (
	"strings"
	"testing"

	"github.com/lgbarn/variantboard-go/internal/engine"
	"github.com/lgbarn/variantboard-go/internal/movetext"
	"github.com/lgbarn/variantboard-go/internal/testutil"
	"github.com/lgbarn/variantboard-go/internal/variants"
)

const testECOData = `
[ECO "B90"]
[Opening "Sicilian"]
[Variation "Najdorf"]

1. e4 c5 2. Nf3 d6 3. d4 cxd4 4. Nxd4 Nf6 5. Nc3 a6 *

[ECO "C50"]
[Opening "Giuoco Piano"]

1. e4 e5 2. Nf3 Nc6 3. Bc4 Bc5 *

[ECO "D35"]
[Opening "QGD"]
[Variation "exchange variation"]

1. d4 d5 2. c4 e6 3. Nc3 Nf6 4. cxd5 exd5 *

[Opening "No code"]

1. e4 *
`

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	ec := NewClassifier(engine.Western("standard"))
	if err := ec.LoadFromReader(strings.NewReader(testECOData)); err != nil {
		t.Fatalf("failed to load ECO data: %v", err)
	}
	return ec
}

func TestClassifierLoad(t *testing.T) {
	ec := newTestClassifier(t)

	if got := ec.EntriesLoaded(); got != 3 {
		t.Errorf("EntriesLoaded() = %d; want 3", got)
	}
	if got := ec.Skipped(); got != 0 {
		t.Errorf("Skipped() = %d; want 0", got)
	}
}

func TestClassifierLoadDuplicateAndBadLines(t *testing.T) {
	ec := NewClassifier(engine.Western("standard"))
	data := testECOData + `
[ECO "B90"]
[Opening "Sicilian"]

1. e4 c5 2. Nf3 d6 3. d4 cxd4 4. Nxd4 Nf6 5. Nc3 a6 *

[ECO "A00"]
[Opening "Broken"]

1. e4 e4 *
`
	if err := ec.LoadFromReader(strings.NewReader(data)); err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}
	// The repeated Najdorf is dropped; the broken line keeps its first ply
	if got := ec.EntriesLoaded(); got != 4 {
		t.Errorf("EntriesLoaded() = %d; want 4", got)
	}
	if got := ec.Skipped(); got != 1 {
		t.Errorf("Skipped() = %d; want 1", got)
	}
}

func TestClassifyGame(t *testing.T) {
	tests := []struct {
		name      string
		pgn       string
		wantCode  string
		wantMatch bool
	}{
		{"sicilian najdorf", "1. e4 c5 2. Nf3 d6 3. d4 cxd4 4. Nxd4 Nf6 5. Nc3 a6 *", "B90", true},
		{"giuoco piano", "1. e4 e5 2. Nf3 Nc6 3. Bc4 Bc5 *", "C50", true},
		{"beyond the line", "1. e4 c5 2. Nf3 d6 3. d4 cxd4 4. Nxd4 Nf6 5. Nc3 a6 6. Be2 e5 7. Nb3 *", "B90", true},
		{"transposed", "1. d4 Nf6 2. c4 e6 3. Nc3 d5 4. cxd5 exd5 *", "D35", true},
		{"no match", "1. a3 *", "", false},
		{"no moves", "*", "", false},
	}

	ec := newTestClassifier(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := ec.ClassifyGame(movetext.Read(strings.NewReader(tt.pgn), nil))
			if (match != nil) != tt.wantMatch {
				t.Fatalf("ClassifyGame() = %v; want match %v", match, tt.wantMatch)
			}
			if match != nil && match.ECOCode != tt.wantCode {
				t.Errorf("ECOCode = %q; want %s", match.ECOCode, tt.wantCode)
			}
		})
	}
}

func TestClassifyBoard(t *testing.T) {
	ec := newTestClassifier(t)
	b, err := variants.Create("standard")
	if err != nil {
		t.Fatal(err)
	}
	testutil.PlayMoves(t, b, "e4", "e5", "Nf3", "Nc6", "Bc4", "Bc5")

	tags := map[string]string{"Event": "Test"}
	if !ec.AddTags(tags, b) {
		t.Fatal("AddTags() = false; want true")
	}
	if tags["ECO"] != "C50" || tags["Opening"] != "Giuoco Piano" {
		t.Errorf("tags = %v; want C50 Giuoco Piano", tags)
	}
	if _, ok := tags["Variation"]; ok {
		t.Errorf("Variation tag set for a line without one: %v", tags)
	}
}

func TestClassifyEmpty(t *testing.T) {
	ec := NewClassifier(engine.Western("standard"))
	b, err := variants.Create("standard")
	if err != nil {
		t.Fatal(err)
	}
	testutil.PlayMoves(t, b, "e4")

	if match := ec.Classify(b); match != nil {
		t.Errorf("Classify() = %v; want nil", match)
	}
	if ec.AddTags(map[string]string{}, b) {
		t.Error("AddTags() = true; want false")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	ec := NewClassifier(engine.Western("standard"))
	if err := ec.LoadFromFile("/nonexistent/eco.pgn"); err == nil {
		t.Error("LoadFromFile() error = nil; want error")
	}
}
