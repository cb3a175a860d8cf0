// Package taxonomy maps detected image labels to waste categories and carries
// the per-category disposal guidance shown to users.
package taxonomy

import "strings"

// Category is a waste classification outcome. Every classification resolves
// to exactly one Category; GeneralWaste is the fallback when no label matches.
type Category string

const (
	Recyclable   Category = "Recyclable"
	Hazardous    Category = "Hazardous"
	Donatable    Category = "Donatable"
	Organic      Category = "Organic"
	GeneralWaste Category = "General Waste"
)

// Categories lists the closed enumeration in match-priority order.
var Categories = []Category{Recyclable, Hazardous, Donatable, Organic, GeneralWaste}

// keywordSets holds the disjoint keyword sets in fixed priority order.
// Priority matters only when a single label matches more than one set.
var keywordSets = []struct {
	category Category
	keywords []string
}{
	{Recyclable, []string{"plastic bottle", "bottle", "can", "paper", "plastic", "glass", "metal"}},
	{Hazardous, []string{"battery", "electronics", "chemical", "paint"}},
	{Donatable, []string{"clothes", "furniture", "book"}},
	{Organic, []string{"food", "organic"}},
}

// Classify resolves an ordered label sequence to a single category.
//
// The labels arrive in descending model-confidence order. The first label
// containing any known keyword (case-insensitive substring) becomes the
// matched label; its category is then resolved by testing the keyword sets
// in fixed priority order recyclable, hazardous, donatable, organic. The
// match-first-then-resolve split makes ties between keyword sets break the
// same way for every caller, which downstream consumers depend on.
func Classify(labels []string) Category {
	for _, label := range labels {
		lowered := strings.ToLower(label)
		if !matchesAny(lowered) {
			continue
		}

		for _, set := range keywordSets {
			for _, keyword := range set.keywords {
				if strings.Contains(lowered, keyword) {
					return set.category
				}
			}
		}
	}

	return GeneralWaste
}

func matchesAny(lowered string) bool {
	for _, set := range keywordSets {
		for _, keyword := range set.keywords {
			if strings.Contains(lowered, keyword) {
				return true
			}
		}
	}
	return false
}

var instructions = map[Category]string{
	Recyclable:   "Clean and place in the recycling bin",
	Hazardous:    "Take to a hazardous waste disposal facility",
	Donatable:    "Consider donating to a local charity or thrift store",
	Organic:      "Compost if possible, or dispose in organic waste",
	GeneralWaste: "Check local disposal guidelines",
}

var tips = map[Category]string{
	Recyclable:   "Consider reusable alternatives",
	Hazardous:    "Look for battery or electronics recycling programs",
	Donatable:    "Someone else may get years of use from this item",
	Organic:      "Food scraps make excellent compost",
	GeneralWaste: "Reduce, Reuse, Recycle when possible",
}

// Instructions returns disposal guidance for a category name. Unrecognized
// input falls back to the general guideline; categories arrive as free-form
// strings at the API boundary.
func Instructions(category string) string {
	if text, ok := instructions[Category(category)]; ok {
		return text
	}
	return "Check local disposal guidelines"
}

// Tip returns a waste-reduction tip for a category name, with a generic
// fallback for unrecognized input.
func Tip(category string) string {
	if text, ok := tips[Category(category)]; ok {
		return text
	}
	return "Reduce, Reuse, Recycle when possible"
}
