package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fitsync/training-service/internal/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestMigrations_OrderedAndNamed(t *testing.T) {
	migrations, err := Migrations()
	require.NoError(t, err)

	var names []string
	for _, m := range migrations {
		names = append(names, m.Name)
		require.NotEmpty(t, strings.TrimSpace(m.SQL))
	}
	require.Equal(t, []string{
		"create_exercises_table",
		"create_workout_plans_table",
		"create_diet_plans_table",
		"create_programs_table",
		"create_updated_at_trigger",
	}, names)
}

func TestMigrate_AppliesOnlyPending(t *testing.T) {
	tx := &stubTx{
		queryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			return &stubRows{data: [][]any{{"create_exercises_table"}, {"create_workout_plans_table"}}}, nil
		},
	}

	applied, err := Migrate(context.Background(), stubBeginner{tx: tx}, logger.Nop())
	require.NoError(t, err)
	require.Equal(t, []string{"create_diet_plans_table", "create_programs_table", "create_updated_at_trigger"}, applied)
	require.True(t, tx.committed)
	require.False(t, tx.rolledBack)

	var recorded []any
	for _, c := range tx.calls {
		if strings.HasPrefix(c.sql, "INSERT INTO migrations") {
			recorded = append(recorded, c.args[0])
		}
	}
	require.Equal(t, []any{"create_diet_plans_table", "create_programs_table", "create_updated_at_trigger"}, recorded)
}

func TestMigrate_RollsBackOnFailure(t *testing.T) {
	tx := &stubTx{
		queryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			return &stubRows{}, nil
		},
		execFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			if strings.Contains(sql, "CREATE TABLE IF NOT EXISTS programs") {
				return pgconn.CommandTag{}, errors.New("boom")
			}
			return pgconn.CommandTag{}, nil
		},
	}

	_, err := Migrate(context.Background(), stubBeginner{tx: tx}, logger.Nop())
	require.ErrorContains(t, err, "create_programs_table")
	require.True(t, tx.rolledBack)
	require.False(t, tx.committed)
}

func TestSeed_WritesCatalogueInOneTransaction(t *testing.T) {
	n := 0
	tx := &stubTx{
		queryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			n++
			return valuesRow("id-" + strings.Repeat("x", n))
		},
	}

	result, err := Seed(context.Background(), stubBeginner{tx: tx}, logger.Nop())
	require.NoError(t, err)
	require.Equal(t, SeedResult{Exercises: 15, WorkoutPlans: 1, DietPlans: 1, Programs: 1}, result)
	require.True(t, tx.committed)

	var programArgs []any
	for _, c := range tx.calls {
		if strings.HasPrefix(strings.TrimSpace(c.sql), "INSERT INTO programs") {
			programArgs = c.args
		}
	}
	require.Equal(t, SeedClientID, programArgs[0])
	require.Equal(t, SeedTrainerID, programArgs[1])
}

func TestSeed_RollsBackOnFailure(t *testing.T) {
	tx := &stubTx{
		queryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return errRow(errors.New("insert failed"))
		},
	}
	_, err := Seed(context.Background(), stubBeginner{tx: tx}, logger.Nop())
	require.Error(t, err)
	require.True(t, tx.rolledBack)
	require.False(t, tx.committed)
}
