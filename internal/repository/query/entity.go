// Package query builds the parameterized SQL shared by every entity repository:
// role-scoped filtered listings with pagination, and allow-listed partial updates.
//
// Everything that decides which columns may be filtered, scoped or updated is
// declared statically in the Entity tables below.
package query

import (
	"fitsync/training-service/internal/domain"
)

// FilterOp is how a recognised filter key is turned into a predicate.
type FilterOp int

const (
	OpEq            FilterOp = iota // column = $n
	OpArrayContains                 // $n = ANY(column)
	OpSearch                        // (name ILIKE $n OR description ILIKE $n)
	OpBool                          // column = $n, value is "true" or anything else
)

// Filter is one entry in an entity's filter allow-list.
type Filter struct {
	Key    string
	Column string
	Op     FilterOp
}

// FieldKind selects how a proposed update value is decoded and bound.
type FieldKind int

const (
	KindText FieldKind = iota
	KindTextArray
	KindInt
	KindBool
	// KindStructured values are validated against a Go type and bound as
	// canonical JSON text. Absent or null becomes an empty array.
	KindStructured
)

// Field is one entry in an entity's update allow-list.
type Field struct {
	Name string
	Kind FieldKind
	// newTarget returns a pointer to decode structured values into.
	newTarget func() any
}

// Entity is the static description of one table.
type Entity struct {
	Name    string
	Table   string
	Columns string // select list, in the order the repositories scan them
	OrderBy string
	// Scope maps a caller role to the column that must equal the caller id.
	// Roles not present see all rows.
	Scope     map[domain.Role]string
	Filters   []Filter
	Updatable []Field
}

func (e *Entity) field(name string) (Field, bool) {
	for _, f := range e.Updatable {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

var Exercises = &Entity{
	Name:    "exercise",
	Table:   "exercises",
	Columns: "id, name, description, muscle_group, equipment_needed, difficulty_level, video_url, instructions, created_by, created_at, updated_at",
	OrderBy: "created_at DESC, id DESC",
	Scope: map[domain.Role]string{
		domain.RoleTrainer: "created_by",
	},
	Filters: []Filter{
		{Key: "muscle_group", Column: "muscle_group", Op: OpArrayContains},
		{Key: "difficulty_level", Column: "difficulty_level", Op: OpEq},
		{Key: "search", Op: OpSearch},
	},
	Updatable: []Field{
		{Name: "name", Kind: KindText},
		{Name: "description", Kind: KindText},
		{Name: "muscle_group", Kind: KindTextArray},
		{Name: "equipment_needed", Kind: KindTextArray},
		{Name: "difficulty_level", Kind: KindText},
		{Name: "video_url", Kind: KindText},
		{Name: "instructions", Kind: KindText},
	},
}

var WorkoutPlans = &Entity{
	Name:    "workout plan",
	Table:   "workout_plans",
	Columns: "id, name, description, trainer_id, duration_weeks, goal, difficulty_level, exercises, COALESCE(is_template, false), created_at, updated_at",
	OrderBy: "created_at DESC, id DESC",
	Scope: map[domain.Role]string{
		domain.RoleTrainer: "trainer_id",
	},
	Filters: []Filter{
		{Key: "goal", Column: "goal", Op: OpEq},
		{Key: "difficulty_level", Column: "difficulty_level", Op: OpEq},
		{Key: "is_template", Column: "is_template", Op: OpBool},
	},
	Updatable: []Field{
		{Name: "name", Kind: KindText},
		{Name: "description", Kind: KindText},
		{Name: "duration_weeks", Kind: KindInt},
		{Name: "goal", Kind: KindText},
		{Name: "difficulty_level", Kind: KindText},
		{Name: "is_template", Kind: KindBool},
		{Name: "exercises", Kind: KindStructured, newTarget: func() any { return &[]domain.WorkoutExercise{} }},
	},
}

var DietPlans = &Entity{
	Name:    "diet plan",
	Table:   "diet_plans",
	Columns: "id, name, trainer_id, calories_target, protein_g, carbs_g, fats_g, meals, restrictions, created_at, updated_at",
	OrderBy: "created_at DESC, id DESC",
	Scope: map[domain.Role]string{
		domain.RoleTrainer: "trainer_id",
	},
	Updatable: []Field{
		{Name: "name", Kind: KindText},
		{Name: "calories_target", Kind: KindInt},
		{Name: "protein_g", Kind: KindInt},
		{Name: "carbs_g", Kind: KindInt},
		{Name: "fats_g", Kind: KindInt},
		{Name: "restrictions", Kind: KindTextArray},
		{Name: "meals", Kind: KindStructured, newTarget: func() any { return &[]domain.Meal{} }},
	},
}

var Programs = &Entity{
	Name:    "program",
	Table:   "programs",
	Columns: "id, client_id, trainer_id, workout_plan_id, diet_plan_id, start_date, end_date, status, notes, assigned_at, updated_at",
	OrderBy: "assigned_at DESC, id DESC",
	Scope: map[domain.Role]string{
		domain.RoleTrainer: "trainer_id",
		domain.RoleClient:  "client_id",
	},
	Filters: []Filter{
		{Key: "client_id", Column: "client_id", Op: OpEq},
		{Key: "status", Column: "status", Op: OpEq},
	},
	// Status is the only column mutated after assignment.
	Updatable: []Field{
		{Name: "status", Kind: KindText},
	},
}
