package catalog

import "strings"

// CategoryOther is the fallback label when no rule matches.
const CategoryOther = "Other"

type categoryRule struct {
	label    string
	keywords []string
}

// categoryRules is ordered: the first matching rule wins, so a name
// containing both "chai" and "organic" classifies as Coffee & Tea even though
// "organic" appears under Health & Wellness. Keep the order stable; sampled
// snapshots are only reproducible if classification is.
var categoryRules = []categoryRule{
	{"Coffee & Tea", []string{"coffee", "tea", "espresso", "latte", "brew", "chai", "matcha"}},
	{"Beverages", []string{"water", "juice", "soda", "drink", "beverage", "cola", "lemonade"}},
	{"Snacks & Chips", []string{"chip", "snack", "pretzel", "popcorn", "cracker", "cookie", "nuts"}},
	{"Candy & Sweets", []string{"candy", "chocolate", "gum", "mint", "sweet", "gummy", "caramel"}},
	{"Spices & Seasoning", []string{"spice", "seasoning", "pepper", "salt", "cinnamon", "cumin", "paprika"}},
	{"Health & Wellness", []string{"vitamin", "supplement", "protein", "organic", "health", "probiotic"}},
	{"Dairy & Refrigerated", []string{"milk", "cheese", "yogurt", "butter", "cream", "dairy", "egg"}},
	{"Canned & Packaged", []string{"canned", "soup", "sauce", "paste", "jar", "broth", "stock"}},
	{"Baking & Cooking", []string{"flour", "sugar", "baking", "yeast", "vanilla", "cocoa", "mix"}},
}

// Classify maps a product name to a category label by case-insensitive
// substring match against the ordered rule table. Pure and deterministic.
func Classify(name string) string {
	low := strings.ToLower(name)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(low, kw) {
				return rule.label
			}
		}
	}
	return CategoryOther
}
