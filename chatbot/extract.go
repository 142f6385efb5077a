package chatbot

import (
	"sort"
	"strings"
)

// ExtractAnimals returns the species tags whose keyword lists match the text.
// Matching is case-insensitive substring containment; a message can match
// several species at once. Results are sorted and duplicate-free, and the
// function is pure: same text in, same tags out.
func (t *Tables) ExtractAnimals(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for animal, keywords := range t.keywords.Animals {
		for _, k := range keywords {
			if strings.Contains(lower, k) {
				found = append(found, animal)
				break
			}
		}
	}
	sort.Strings(found)
	return found
}

// ExtractSymptoms returns every symptom keyword contained in the text.
// There is no stemming and no negation handling: "not coughing" still
// matches "cough". Recall over precision, by the same policy the
// classifier uses.
func (t *Tables) ExtractSymptoms(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, s := range t.keywords.Symptoms {
		if strings.Contains(lower, s) {
			found = append(found, s)
		}
	}
	return found
}
