package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_RunsStagesInOrder(t *testing.T) {
	var order []string
	stage := func(name string) Stage {
		return Stage{Name: name, Run: func(ctx context.Context) error {
			order = append(order, name)
			return nil
		}}
	}

	runner := NewRunner(slog.Default(), stage("load"), stage("clean"), stage("normalize"))
	require.NoError(t, runner.Run(context.Background()))
	assert.Equal(t, []string{"load", "clean", "normalize"}, order)
}

func TestRunner_StopsOnFirstError(t *testing.T) {
	boom := errors.New("boom")
	var ran []string

	runner := NewRunner(slog.Default(),
		Stage{Name: "ok", Run: func(ctx context.Context) error {
			ran = append(ran, "ok")
			return nil
		}},
		Stage{Name: "fails", Run: func(ctx context.Context) error {
			ran = append(ran, "fails")
			return boom
		}},
		Stage{Name: "never", Run: func(ctx context.Context) error {
			ran = append(ran, "never")
			return nil
		}},
	)

	err := runner.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "stage fails")
	assert.Equal(t, []string{"ok", "fails"}, ran)
}

func TestRunner_HonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var ran int
	runner := NewRunner(slog.Default(),
		Stage{Name: "first", Run: func(ctx context.Context) error {
			ran++
			cancel()
			return nil
		}},
		Stage{Name: "second", Run: func(ctx context.Context) error {
			ran++
			return nil
		}},
	)

	err := runner.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, ran)
}

func TestRunner_NoStages(t *testing.T) {
	runner := NewRunner(slog.Default())
	assert.NoError(t, runner.Run(context.Background()))
}
