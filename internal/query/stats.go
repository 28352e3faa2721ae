package query

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"genmap/util"
)

// SurnameCount is one entry in the surname ranking.
type SurnameCount struct {
	Surname string `json:"surname"`
	Count   int    `json:"count"`
}

// Statistics aggregates the dataset.
type Statistics struct {
	TotalIndividuals       int            `json:"total_individuals"`
	TotalFamilies          int            `json:"total_families"`
	GenderDistribution     map[string]int `json:"gender_distribution"`
	OccupationDistribution map[string]int `json:"occupation_distribution,omitempty"`
	CenturyDistribution    map[string]int `json:"century_distribution,omitempty"`
	LivingPeople           int            `json:"living_people"`
	AverageLifespan        float64        `json:"average_lifespan"`
	LifespanSamples        int            `json:"lifespan_samples"`
	CommonSurnames         []SurnameCount `json:"common_surnames,omitempty"`
}

// topSurnames caps the surname ranking.
const topSurnames = 10

// Statistics computes aggregate counts and distributions. Lifespans average
// only individuals whose birth and death years both parse; anyone without a
// death record counts as living.
func (e *Engine) Statistics() *Statistics {
	stats := &Statistics{
		TotalIndividuals:       len(e.tree.Individuals),
		TotalFamilies:          len(e.tree.Families),
		GenderDistribution:     map[string]int{"M": 0, "F": 0, "Unknown": 0},
		OccupationDistribution: make(map[string]int),
		CenturyDistribution:    make(map[string]int),
	}

	surnames := make(map[string]int)
	lifespanSum := 0

	for _, ind := range e.tree.Individuals {
		switch ind.Gender {
		case "M", "F":
			stats.GenderDistribution[ind.Gender]++
		default:
			stats.GenderDistribution["Unknown"]++
		}

		if ind.Occupation != "" {
			stats.OccupationDistribution[ind.Occupation]++
		}
		if ind.Surname != "" {
			surnames[ind.Surname]++
		}

		birthYear, birthOK := util.YearOf(ind.Birth.Date)
		if birthOK {
			century := birthYear/100 + 1
			stats.CenturyDistribution[fmt.Sprintf("%s century", ordinal(century))]++
		}

		if ind.Death.Date == "" && ind.Death.Place == "" {
			stats.LivingPeople++
		} else if birthOK {
			if deathYear, ok := util.YearOf(ind.Death.Date); ok && deathYear >= birthYear {
				lifespanSum += deathYear - birthYear
				stats.LifespanSamples++
			}
		}
	}

	if stats.LifespanSamples > 0 {
		avg := float64(lifespanSum) / float64(stats.LifespanSamples)
		stats.AverageLifespan = math.Round(avg*10) / 10
	}

	stats.CommonSurnames = rankSurnames(surnames)
	return stats
}

// rankSurnames orders surnames by descending count, ties alphabetically.
func rankSurnames(counts map[string]int) []SurnameCount {
	ranked := make([]SurnameCount, 0, len(counts))
	for surname, count := range counts {
		ranked = append(ranked, SurnameCount{Surname: surname, Count: count})
	}
	slices.SortFunc(ranked, func(a, b SurnameCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Surname, b.Surname)
	})
	if len(ranked) > topSurnames {
		ranked = ranked[:topSurnames]
	}
	return ranked
}

// ordinal renders 1 as "1st", 22 as "22nd", 13 as "13th".
func ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
