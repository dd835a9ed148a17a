package services

import (
	"strings"

	"talentsift/assessment-recommender/internal/catalog"
	"talentsift/assessment-recommender/internal/models"
)

// KeywordRanker is the guaranteed terminal pipeline stage: deterministic
// keyword rules over the catalog, no external calls, never fails.
type KeywordRanker interface {
	Rank(query string, timeLimit, maxResults int) []models.Recommendation
}

type keywordRanker struct {
	catalog *catalog.Catalog
	rules   []keywordRule
}

// keywordRule maps query trigger words to a predicate over assessments.
// Rules are evaluated in order, and earlier matches rank higher.
type keywordRule struct {
	triggered func(query string) bool
	matches   func(a models.Assessment) bool
}

func NewKeywordRanker(c *catalog.Catalog) KeywordRanker {
	return &keywordRanker{
		catalog: c,
		rules: []keywordRule{
			{anyOf("java"), nameOrDescription("java")},
			{anyOf("python"), nameOrDescription("python")},
			{anyOf("javascript", "js"), nameOrDescription("javascript")},
			{anyOf("sql"), nameOrDescription("sql")},
			{fullStackTrigger, nameOrDescription("full stack")},
			{anyOf("cognitive", "reasoning", "analytical", "analyst"), testTypeContains("cognitive")},
			{anyOf("personality"), testTypeContains("personality")},
			{anyOf("collaborate", "team", "communication"), nameOrDescription("team", "collaborat", "communicat")},
			{anyOf("leadership", "lead", "manage"), anyField(testTypeContains("leadership"), descriptionContains("leadership", "management"))},
			{anyOf("customer", "service", "support"), nameOrDescription("customer")},
			{anyOf("sales", "selling", "business development"), nameOrDescription("sales")},
			{anyOf("remote", "work from home", "virtual"), nameOrDescription("remote")},
			{anyOf("agile", "scrum", "sprint"), nameOrDescription("agile")},
		},
	}
}

// Rank implements KeywordRanker.
func (k *keywordRanker) Rank(query string, timeLimit, maxResults int) []models.Recommendation {
	filteredByTime := k.catalog.FilterByTime(timeLimit)
	queryLower := strings.ToLower(query)

	var accumulated []models.Assessment
	for _, rule := range k.rules {
		if !rule.triggered(queryLower) {
			continue
		}
		for _, a := range filteredByTime {
			if rule.matches(a) {
				accumulated = append(accumulated, a)
			}
		}
	}

	// No rule matched: offer a mixed bag of general-purpose assessments.
	if len(accumulated) == 0 {
		accumulated = mixedBag(filteredByTime)
	}

	seen := make(map[string]bool)
	recommendations := []models.Recommendation{}
	for _, a := range accumulated {
		if seen[a.Name] {
			continue
		}
		seen[a.Name] = true

		if len(recommendations) == maxResults {
			break
		}

		recommendations = append(recommendations, models.Recommendation{
			Assessment:     a,
			RelevanceScore: 100 - 5*len(recommendations),
		})
	}

	return recommendations
}

// mixedBag picks up to 2 cognitive, 2 personality, and 1 behavioral
// assessment, in that priority order, from the time-filtered catalog.
func mixedBag(assessments []models.Assessment) []models.Assessment {
	var bag []models.Assessment
	bag = append(bag, takeByTestType(assessments, "cognitive", 2)...)
	bag = append(bag, takeByTestType(assessments, "personality", 2)...)
	bag = append(bag, takeByTestType(assessments, "behavioral", 1)...)

	return bag
}

func takeByTestType(assessments []models.Assessment, testType string, max int) []models.Assessment {
	var taken []models.Assessment
	for _, a := range assessments {
		if len(taken) == max {
			break
		}
		if strings.Contains(strings.ToLower(a.TestType), testType) {
			taken = append(taken, a)
		}
	}

	return taken
}

func anyOf(words ...string) func(query string) bool {
	return func(query string) bool {
		for _, w := range words {
			if strings.Contains(query, w) {
				return true
			}
		}
		return false
	}
}

// fullStackTrigger fires on "full stack" or on a query mentioning both the
// front and back end.
func fullStackTrigger(query string) bool {
	if strings.Contains(query, "full stack") {
		return true
	}
	return strings.Contains(query, "front") && strings.Contains(query, "back")
}

func nameOrDescription(needles ...string) func(a models.Assessment) bool {
	return func(a models.Assessment) bool {
		name := strings.ToLower(a.Name)
		description := strings.ToLower(a.Description)
		for _, n := range needles {
			if strings.Contains(name, n) || strings.Contains(description, n) {
				return true
			}
		}
		return false
	}
}

func descriptionContains(needles ...string) func(a models.Assessment) bool {
	return func(a models.Assessment) bool {
		description := strings.ToLower(a.Description)
		for _, n := range needles {
			if strings.Contains(description, n) {
				return true
			}
		}
		return false
	}
}

func testTypeContains(needle string) func(a models.Assessment) bool {
	return func(a models.Assessment) bool {
		return strings.Contains(strings.ToLower(a.TestType), needle)
	}
}

func anyField(predicates ...func(a models.Assessment) bool) func(a models.Assessment) bool {
	return func(a models.Assessment) bool {
		for _, p := range predicates {
			if p(a) {
				return true
			}
		}
		return false
	}
}
