package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetLevel(t *testing.T) {
	type expect struct {
		name string
		want zap.AtomicLevel
	}
	tests := []struct {
		name   string
		levels []NamedLevel
		expect []expect
	}{
		{
			name: "exact before glob",
			levels: []NamedLevel{
				{Name: "share", Level: "debug"},
				{Name: "share*", Level: "info"},
				{Name: "share.sub", Level: "warn"},
				{Name: "*", Level: "fatal"},
			},
			expect: []expect{
				{"share", zap.NewAtomicLevelAt(zap.DebugLevel)},
				{"share.coordinator", zap.NewAtomicLevelAt(zap.InfoLevel)},
				{"share.sub", zap.NewAtomicLevelAt(zap.InfoLevel)},
				{"random", zap.NewAtomicLevelAt(zap.FatalLevel)},
			},
		},
		{
			name: "catch all first",
			levels: []NamedLevel{
				{Name: "*", Level: "ERROR"},
				{Name: "share", Level: "info"},
			},
			expect: []expect{
				{"share", zap.NewAtomicLevelAt(zap.ErrorLevel)},
				{"random", zap.NewAtomicLevelAt(zap.ErrorLevel)},
			},
		},
		{
			name: "suffix glob",
			levels: []NamedLevel{
				{Name: "share", Level: "info"},
				{Name: "*.remote", Level: "warn"},
				{Name: "*", Level: "fatal"},
			},
			expect: []expect{
				{"share", zap.NewAtomicLevelAt(zap.InfoLevel)},
				{"share.remote", zap.NewAtomicLevelAt(zap.WarnLevel)},
				{"random", zap.NewAtomicLevelAt(zap.FatalLevel)},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetNamedLevels(tt.levels)
			for _, e := range tt.expect {
				assert.Equal(t, e.want.Level(), getLevel(e.name).Level(), e.name)
			}
		})
	}

	t.Run("invalid levels are skipped", func(t *testing.T) {
		SetNamedLevels([]NamedLevel{
			{Name: "*", Level: "invalid"},
			{Name: "share", Level: "info"},
		})
		assert.Equal(t, zap.InfoLevel, getLevel("share").Level())
		assert.Equal(t, logger.Level(), getLevel("other").Level())
	})
	SetNamedLevels(nil)
}

func TestLevelsFromStr(t *testing.T) {
	levels := LevelsFromStr("share.coordinator=DEBUG; share.*=WARN;ERROR;broken=nope")
	require.Len(t, levels, 3)
	assert.Equal(t, NamedLevel{Name: "share.coordinator", Level: "DEBUG"}, levels[0])
	assert.Equal(t, NamedLevel{Name: "share.*", Level: "WARN"}, levels[1])
	assert.Equal(t, NamedLevel{Name: "*", Level: "ERROR"}, levels[2])
}

func TestCtxWithFields(t *testing.T) {
	ctx := CtxWithFields(context.Background(), zap.String("op", "create"))
	ctx = CtxWithFields(ctx, zap.String("resourceId", "proj1"))
	fields := CtxGetFields(ctx)
	require.Len(t, fields, 2)
	assert.Equal(t, "op", fields[0].Key)
	assert.Equal(t, "resourceId", fields[1].Key)
	assert.Empty(t, CtxGetFields(context.Background()))
}

func TestNewNamed(t *testing.T) {
	l1 := NewNamed("share.test")
	l2 := NewNamed("share.test")
	assert.Same(t, l1.Logger, l2.Logger)
}
