package curriculum

import "github.com/calumwright/praxis/internal/models"

// The 14-day Foundation program: one required morning breath leg per day,
// with an optional evening awareness sit from day 8 on. Day 7 is a rest
// day with no required legs; adherence treats it as gray.
func buildFoundationDays() []models.CurriculumDay {
	days := make([]models.CurriculumDay, 0, 14)
	for dayNumber := 1; dayNumber <= 14; dayNumber++ {
		day := models.CurriculumDay{
			DayNumber: dayNumber,
			Title:     "Foundation",
			Subtitle:  subtitle(dayNumber, 14),
			Legs: []models.Leg{
				{
					LegNumber:   1,
					Label:       "Morning Breath Practice",
					CategoryID:  models.CategoryBreathwork,
					MatchPolicy: models.MatchAnyInCategory,
					Required:    dayNumber%7 != 0,
				},
			},
		}
		if dayNumber >= 8 {
			day.Legs = append(day.Legs, models.Leg{
				LegNumber:   2,
				Label:       "Evening Awareness Sit",
				CategoryID:  models.CategoryAwareness,
				MatchPolicy: models.MatchAnyInCategory,
				Required:    false,
			})
		}
		days = append(days, day)
	}
	return days
}
