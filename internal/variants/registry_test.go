package variants_test

import (
	stderrors "errors"
	"testing"

	"github.com/lgbarn/variantboard-go/internal/engine"
	"github.com/lgbarn/variantboard-go/internal/errors"
	"github.com/lgbarn/variantboard-go/internal/testutil"
	"github.com/lgbarn/variantboard-go/internal/variants"
)

func TestRegisterAllOrder(t *testing.T) {
	names := variants.Names()
	testutil.AssertEqual(t, len(names), 59)
	testutil.AssertEqual(t, names[0], "standard")
	testutil.AssertEqual(t, names[1], "fischerandom")
	testutil.AssertEqual(t, names[len(names)-1], "minixiangqi")

	seen := make(map[string]bool)
	for _, name := range names {
		testutil.AssertFalse(t, seen[name], "duplicate %s", name)
		seen[name] = true
	}
}

func TestRegistryRules(t *testing.T) {
	tests := []struct {
		name    string
		variant string
		want    string
		wantErr bool
	}{
		{name: "registered name", variant: "crazyhouse", want: "crazyhouse"},
		{name: "case insensitive", variant: "Capablanca", want: "capablanca"},
		{name: "alias", variant: "chess", want: "standard"},
		{name: "fischer random alias", variant: "fischerrandom", want: "fischerandom"},
		{name: "n-check", variant: "5check", want: "5check"},
		{name: "unknown", variant: "shogi", wantErr: true},
		{name: "empty", variant: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules, err := variants.Default().Rules(tt.variant)
			if tt.wantErr {
				testutil.AssertTrue(t, stderrors.Is(err, errors.ErrUnknownVariant), "got %v", err)
				testutil.AssertFalse(t, variants.Default().Has(tt.variant))
				return
			}
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, rules.Variant, tt.want)
			testutil.AssertTrue(t, variants.Default().Has(tt.variant))
		})
	}
}

func TestRegistrySharesRules(t *testing.T) {
	a, err := variants.Default().Rules("standard")
	testutil.AssertNoError(t, err)
	b, err := variants.Default().Rules("chess")
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, a == b, "aliases should share one rules value")
}

func TestRegistryCreateUnknown(t *testing.T) {
	b, err := variants.Create("janggi")
	testutil.AssertNil(t, b)
	testutil.AssertTrue(t, stderrors.Is(err, errors.ErrUnknownVariant), "got %v", err)
}

func TestRegistryDuplicatePanics(t *testing.T) {
	r := variants.NewRegistry()
	r.Register("standard", variants.Standard)
	defer func() {
		testutil.AssertNotNil(t, recover(), "registering a name twice should panic")
	}()
	r.Register("Standard", variants.Standard)
}

func TestRegistryRejectsInvalidRules(t *testing.T) {
	r := variants.NewRegistry()
	r.Register("broken", func() *engine.Rules {
		rules := engine.Western("broken")
		rules.Width = 0
		return rules
	})
	_, err := r.Rules("broken")
	testutil.AssertError(t, err)
}

func TestEveryVariantHasBoardGeometry(t *testing.T) {
	sizes := map[string][2]int{
		"standard":    {8, 8},
		"capablanca":  {10, 8},
		"janus":       {10, 8},
		"grand":       {10, 10},
		"modern":      {9, 9},
		"courier":     {12, 8},
		"makruk":      {8, 8},
		"losalamos":   {6, 6},
		"chancellor":  {9, 9},
		"caparandom":  {10, 8},
		"sittuyin":    {8, 8},
		"minixiangqi": {7, 7},
	}
	for name, size := range sizes {
		t.Run(name, func(t *testing.T) {
			b, err := variants.Create(name)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, [2]int{b.Width(), b.Height()}, size)
			testutil.AssertEqual(t, b.Variant(), name)
		})
	}
}
