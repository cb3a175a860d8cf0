package taxonomy_test

import (
	"slices"
	"testing"

	"github.com/Tanmay1202/EnviRon/internal/taxonomy"
)

func TestClassifyEmptyLabels(t *testing.T) {
	if got := taxonomy.Classify(nil); got != taxonomy.GeneralWaste {
		t.Errorf("Classify(nil) = %v, want GeneralWaste", got)
	}
	if got := taxonomy.Classify([]string{}); got != taxonomy.GeneralWaste {
		t.Errorf("Classify([]) = %v, want GeneralWaste", got)
	}
}

func TestClassifyReturnsClosedEnumeration(t *testing.T) {
	inputs := [][]string{
		{"plastic bottle"},
		{"battery"},
		{"winter clothes"},
		{"leftover food"},
		{"unknown object"},
		{"chair"},
		{"", "  ", "???"},
	}

	for _, labels := range inputs {
		got := taxonomy.Classify(labels)
		if !slices.Contains(taxonomy.Categories, got) {
			t.Errorf("Classify(%v) = %q, not in closed enumeration", labels, got)
		}
	}
}

func TestClassifySingleLabels(t *testing.T) {
	tests := []struct {
		label string
		want  taxonomy.Category
	}{
		{"plastic bottle", taxonomy.Recyclable},
		{"aluminum can", taxonomy.Recyclable},
		{"Glass Jar", taxonomy.Recyclable},
		{"old battery", taxonomy.Hazardous},
		{"consumer electronics", taxonomy.Hazardous},
		{"paint bucket", taxonomy.Hazardous},
		{"used clothes", taxonomy.Donatable},
		{"wooden furniture", taxonomy.Donatable},
		{"paperback book", taxonomy.Donatable},
		{"food waste", taxonomy.Organic},
		{"organic matter", taxonomy.Organic},
		{"unknown object", taxonomy.GeneralWaste},
	}

	for _, tt := range tests {
		if got := taxonomy.Classify([]string{tt.label}); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}

// A label matching two keyword sets resolves by fixed priority, not by which
// keyword appears first in the label text.
func TestClassifyPriorityBetweenSets(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  taxonomy.Category
	}{
		{"recyclable beats hazardous", "battery can", taxonomy.Recyclable},
		{"recyclable beats donatable", "glass furniture", taxonomy.Recyclable},
		{"recyclable beats organic", "food can", taxonomy.Recyclable},
		{"hazardous beats donatable", "paint on furniture", taxonomy.Hazardous},
		{"hazardous beats organic", "chemical food", taxonomy.Hazardous},
		{"donatable beats organic", "food on clothes", taxonomy.Donatable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := taxonomy.Classify([]string{tt.label}); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.label, got, tt.want)
			}
		})
	}
}

// The first label with any keyword match decides the outcome, even when a
// later label would map to a different category.
func TestClassifyLabelOrderWins(t *testing.T) {
	got := taxonomy.Classify([]string{"food", "plastic bottle"})
	if got != taxonomy.Organic {
		t.Errorf("Classify([food, plastic bottle]) = %v, want Organic", got)
	}

	got = taxonomy.Classify([]string{"random thing", "book", "battery"})
	if got != taxonomy.Donatable {
		t.Errorf("Classify([random thing, book, battery]) = %v, want Donatable", got)
	}
}

func TestInstructionsTotal(t *testing.T) {
	if got := taxonomy.Instructions(string(taxonomy.Recyclable)); got != "Clean and place in the recycling bin" {
		t.Errorf("Instructions(Recyclable) = %q", got)
	}
	if got := taxonomy.Instructions("definitely not a category"); got != "Check local disposal guidelines" {
		t.Errorf("Instructions(unknown) = %q, want fallback", got)
	}
}

func TestTipTotal(t *testing.T) {
	if got := taxonomy.Tip(string(taxonomy.Recyclable)); got != "Consider reusable alternatives" {
		t.Errorf("Tip(Recyclable) = %q", got)
	}
	if got := taxonomy.Tip("definitely not a category"); got != "Reduce, Reuse, Recycle when possible" {
		t.Errorf("Tip(unknown) = %q, want fallback", got)
	}
}
