package domain

import "time"

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Exercise represents a single exercise definition in the library.
type Exercise struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description"`
	MuscleGroup     []string  `json:"muscle_group"`
	EquipmentNeeded []string  `json:"equipment_needed"`
	DifficultyLevel *string   `json:"difficulty_level"`
	VideoURL        *string   `json:"video_url"` // media reference; an object key once media is uploaded
	Instructions    *string   `json:"instructions"`
	CreatedBy       string    `json:"created_by"` // immutable owner reference
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
