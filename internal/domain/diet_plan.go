package domain

import "time"

// DietPlan holds macro targets and an ordered list of meals.
type DietPlan struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	TrainerID      string    `json:"trainer_id"`
	CaloriesTarget *int      `json:"calories_target"`
	ProteinG       *int      `json:"protein_g"`
	CarbsG         *int      `json:"carbs_g"`
	FatsG          *int      `json:"fats_g"`
	Meals          []Meal    `json:"meals"`
	Restrictions   []string  `json:"restrictions"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Meal struct {
	MealType     string   `json:"meal_type"` // breakfast, lunch, dinner, snack
	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
	Calories     *int     `json:"calories,omitempty"`
	Macros       *Macros  `json:"macros,omitempty"`
}

type Macros struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fats    float64 `json:"fats"`
}
