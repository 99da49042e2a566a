package booking

import (
	"math/rand"
	"sort"
	"strings"

	"trainbook/models"
	"trainbook/utils"
)

// dayPartRange returns the inclusive minutes-since-midnight window of a
// bucket.
func dayPartRange(dp models.DayPart) (min, max int, ok bool) {
	switch dp {
	case models.DayPartMorning:
		return 6 * 60, 11*60 + 59, true
	case models.DayPartAfternoon:
		return 12 * 60, 17*60 + 59, true
	case models.DayPartEvening:
		return 18 * 60, 23*60 + 59, true
	case models.DayPartNight:
		return 0, 5*60 + 59, true
	}
	return 0, 0, false
}

// ApplyCriteria runs the candidate pipeline: availability, name, direct and
// price filters, day-part bucketing, sorting, then selection. It is pure:
// the input slice is never mutated and the same input yields the same output
// (selection aside, which draws from rng). An empty result is not an error;
// the orchestrator treats it as "no bookable candidates".
func ApplyCriteria(candidates []models.TrainCandidate, criteria models.SearchCriteria, rng *rand.Rand) []models.TrainCandidate {
	trains := make([]models.TrainCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Available() {
			trains = append(trains, c)
		}
	}

	if len(criteria.TrainNames) > 0 {
		trains = filterByName(trains, criteria.TrainNames)
	}

	if criteria.OnlyDirect {
		kept := trains[:0:0]
		for _, c := range trains {
			if c.NumTransits == 0 {
				kept = append(kept, c)
			}
		}
		trains = kept
	}

	if criteria.MinPrice != nil || criteria.MaxPrice != nil {
		kept := trains[:0:0]
		for _, c := range trains {
			if criteria.MinPrice != nil && c.Fare < *criteria.MinPrice {
				continue
			}
			if criteria.MaxPrice != nil && c.Fare > *criteria.MaxPrice {
				continue
			}
			kept = append(kept, c)
		}
		trains = kept
	}

	if len(criteria.DepartTimes) > 0 {
		// Per-bucket concatenation: a candidate appears once per bucket it
		// matches. The buckets partition the day, so no candidate can match
		// twice under the current definitions.
		var matched []models.TrainCandidate
		for _, dp := range criteria.DepartTimes {
			min, max, ok := dayPartRange(dp)
			if !ok {
				continue
			}
			for _, c := range trains {
				if m := c.Departure.TotalMinutes(); m >= min && m <= max {
					matched = append(matched, c)
				}
			}
		}
		trains = matched
	}

	switch criteria.SortBy {
	case models.SortByPrice:
		sort.SliceStable(trains, func(i, j int) bool {
			return trains[i].Fare < trains[j].Fare
		})
	case models.SortByEarliestDeparture:
		sort.SliceStable(trains, func(i, j int) bool {
			return trains[i].Departure.Composite() < trains[j].Departure.Composite()
		})
	case models.SortByLatestDeparture:
		sort.SliceStable(trains, func(i, j int) bool {
			return trains[i].Departure.Composite() > trains[j].Departure.Composite()
		})
	}

	switch criteria.Selection {
	case models.SelectionRandom:
		if len(trains) > 1 {
			trains = []models.TrainCandidate{trains[intn(rng, len(trains))]}
		}
	case models.SelectionFirst:
		if len(trains) > 1 {
			trains = trains[:1]
		}
	}

	return trains
}

func filterByName(trains []models.TrainCandidate, names []string) []models.TrainCandidate {
	kept := trains[:0:0]
	for _, c := range trains {
		label := strings.ToLower(utils.StripTrainSuffix(c.BrandLabel))
		for _, name := range names {
			if strings.Contains(label, strings.ToLower(name)) {
				kept = append(kept, c)
				break
			}
		}
	}
	return kept
}

func intn(rng *rand.Rand, n int) int {
	if rng != nil {
		return rng.Intn(n)
	}
	return rand.Intn(n)
}
