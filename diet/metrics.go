// Package diet computes summary figures over a user's logged meals.
package diet

import (
	"sort"

	"meal-tracker-api/models"
)

type Metrics struct {
	TotalMeals         int `json:"total_meals"`
	OnDietMeals        int `json:"on_diet_meals"`
	OffDietMeals       int `json:"off_diet_meals"`
	BestOnDietSequence int `json:"best_on_diet_sequence"`
}

// Summarize counts meals and finds the longest run of consecutive on-diet
// meals. Meals are ordered by date (then creation time) before the run is
// measured, so the input order does not matter.
func Summarize(meals []models.Meal) Metrics {
	ordered := make([]models.Meal, len(meals))
	copy(ordered, meals)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
		}
		return ordered[i].Date.Before(ordered[j].Date)
	})

	var m Metrics
	run := 0
	for _, meal := range ordered {
		m.TotalMeals++
		if !meal.OnDiet {
			m.OffDietMeals++
			run = 0
			continue
		}
		m.OnDietMeals++
		run++
		if run > m.BestOnDietSequence {
			m.BestOnDietSequence = run
		}
	}
	return m
}
