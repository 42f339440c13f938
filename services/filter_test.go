package services

import (
	"strings"
	"testing"
	"time"

	"github.com/procurehub/match-engine/model"
)

func TestFilterValidate(t *testing.T) {
	min, max := 100.0, 50.0

	tests := []struct {
		name    string
		filter  SearchFilter
		wantErr bool
	}{
		{"empty filter", SearchFilter{}, false},
		{"valid bounds", SearchFilter{BudgetMin: &max, BudgetMax: &min}, false},
		{"inverted bounds", SearchFilter{BudgetMin: &min, BudgetMax: &max}, true},
		{"known entity type", SearchFilter{EntityType: EntityTypeVendors}, false},
		{"unknown entity type", SearchFilter{EntityType: "contracts"}, true},
		{"unknown sort order", SearchFilter{SortOrder: "sideways"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.Validate()
			if tt.wantErr && err == nil {
				t.Error("Expected a validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected validation error: %v", err)
			}
		})
	}
}

func TestFilterKinds(t *testing.T) {
	all := SearchFilter{}
	if kinds := all.Kinds(); len(kinds) != 3 {
		t.Errorf("Expected empty entity type to imply all 3 kinds, got %v", kinds)
	}

	vendors := SearchFilter{EntityType: EntityTypeVendors}
	kinds := vendors.Kinds()
	if len(kinds) != 1 || kinds[0] != model.EntityKindVendor {
		t.Errorf("Expected [vendor], got %v", kinds)
	}
}

func TestFilterSignatureNormalizesCasing(t *testing.T) {
	a := SearchFilter{Query: "Steel Pipes", Category: "Construction"}
	b := SearchFilter{Query: "  steel pipes ", Category: "construction"}

	if a.Signature() != b.Signature() {
		t.Errorf("Expected equal signatures, got %q and %q", a.Signature(), b.Signature())
	}
}

func TestFilterSignatureDistinguishesFields(t *testing.T) {
	min := 100.0
	deadline := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	base := SearchFilter{Query: "steel"}
	variants := []SearchFilter{
		{Query: "steel", Category: "Construction"},
		{Query: "steel", Location: "Berlin"},
		{Query: "steel", BudgetMin: &min},
		{Query: "steel", EntityType: EntityTypeOffers},
		{Query: "steel", SortKey: SortKeyPrice},
		{Query: "steel", SortOrder: SortOrderAsc},
		{Query: "steel", DeadlineFrom: &deadline},
	}

	seen := map[string]bool{base.Signature(): true}
	for i, variant := range variants {
		signature := variant.Signature()
		if seen[signature] {
			t.Errorf("Variant %d collides with an earlier signature: %q", i, signature)
		}
		seen[signature] = true
	}
}

func TestFilterSignatureTreatsEmptyTypeAsAll(t *testing.T) {
	implicit := SearchFilter{Query: "steel"}
	explicit := SearchFilter{Query: "steel", EntityType: EntityTypeAll}

	if implicit.Signature() != explicit.Signature() {
		t.Error("Expected empty entity type to share the 'all' signature")
	}
	if !strings.Contains(implicit.Signature(), "type=all") {
		t.Errorf("Expected 'type=all' in signature, got %q", implicit.Signature())
	}
}
