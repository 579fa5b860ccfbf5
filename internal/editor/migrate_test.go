package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/asptool/internal/scenario"
)

func TestSelectTriggers_StableFilter(t *testing.T) {
	src := named("A", "B", "C", "D", "E")

	got := SelectTriggers(src, []string{"D", "B", "Z"})

	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].Name)
	assert.Equal(t, "D", got[1].Name)
}

func TestSelectTriggers_DuplicateNames(t *testing.T) {
	src := named("Spawn", "Other", "Spawn")

	got := SelectTriggers(src, []string{"Spawn"})

	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].ID)
	assert.Equal(t, 2, got[1].ID)
}

func TestSelectTriggers_NFC(t *testing.T) {
	src := named("Caf\u00e9")

	got := SelectTriggers(src, []string{"Cafe\u0301"})

	require.Len(t, got, 1)
}

func TestMigrate_EndToEnd(t *testing.T) {
	src := named("A", "B", "C", "D", "E")
	dest := scenario.New("dest")

	m, err := Migrate(src, dest, []string{"B", "D"}, -1)
	require.NoError(t, err)

	assert.Equal(t, []string{"B", "D"}, dest.Names())
	assert.Equal(t, []int{1, 3}, m.SourceIDs)
	assert.Equal(t, []int{0, 1}, m.DestIDs)
	assert.Equal(t, 2, m.DestCount)
	assert.Empty(t, m.Missing)
	require.NoError(t, dest.Validate())

	// Source untouched.
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, src.Names())
}

func TestMigrate_CountAndPosition(t *testing.T) {
	tests := []struct {
		name      string
		insertPos int
		want      []string
	}{
		{"append", -1, []string{"X", "Y", "Z", "B", "D"}},
		{"front", 0, []string{"B", "D", "X", "Y", "Z"}},
		{"middle", 1, []string{"X", "B", "D", "Y", "Z"}},
		{"past end", 42, []string{"X", "Y", "Z", "B", "D"}},
		{"negative", -7, []string{"X", "Y", "Z", "B", "D"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := named("A", "B", "C", "D", "E")
			dest := named("X", "Y", "Z")

			m, err := Migrate(src, dest, []string{"B", "D"}, tt.insertPos)
			require.NoError(t, err)

			assert.Equal(t, tt.want, dest.Names())
			assert.Equal(t, 3+2, m.DestCount)
			require.NoError(t, dest.Validate())
		})
	}
}

func TestMigrate_ReconcilesDisplayOrder(t *testing.T) {
	src := named("A", "B")
	dest := named("X", "Y", "Z")
	dest.DisplayOrder = []int{2, 1, 0}

	m, err := Migrate(src, dest, []string{"A"}, 1)
	require.NoError(t, err)

	// Display Z, Y, X with A inserted at display position 1: Z, A, Y, X.
	assert.Equal(t, []string{"Z", "A", "Y", "X"}, dest.Names())
	assert.Equal(t, []int{0, 1, 2, 3}, dest.DisplayOrder)
	assert.Equal(t, []int{1}, m.DestIDs)
}

func TestMigrate_RemapsReferencesAmongCopies(t *testing.T) {
	src := named("A", "B", "C")
	src.Triggers[0].Effects = []scenario.Effect{
		scenario.TargetsTrigger(scenario.EffectActivateTrigger, 2),
		scenario.TargetsTrigger(scenario.EffectDeactivateTrigger, 1),
	}
	dest := named("X")

	_, err := Migrate(src, dest, []string{"A", "C"}, -1)
	require.NoError(t, err)

	require.Equal(t, []string{"X", "A", "C"}, dest.Names())
	a := dest.Triggers[1]
	assert.Equal(t, 2, *a.Effects[0].TriggerID, "reference to copied C")
	assert.Equal(t, scenario.NoTrigger, *a.Effects[1].TriggerID, "reference to uncopied B")
}

func TestMigrate_ReportsMissingNames(t *testing.T) {
	src := named("Spawn Wave", "Victory")
	dest := scenario.New("dest")

	m, err := Migrate(src, dest, []string{"Spawn Wav", "Totally Different", "Victory", "Spawn Wav"}, -1)
	require.NoError(t, err)

	assert.Equal(t, []string{"Victory"}, dest.Names())
	assert.Equal(t, []string{"Spawn Wav", "Totally Different"}, m.Missing)
	assert.Equal(t, map[string]string{"Spawn Wav": "Spawn Wave"}, m.Suggestions)
}

func TestMigrate_NothingSelected(t *testing.T) {
	src := named("A")
	dest := named("X", "Y")

	m, err := Migrate(src, dest, nil, -1)
	require.NoError(t, err)

	assert.Equal(t, []string{"X", "Y"}, dest.Names())
	assert.Empty(t, m.SourceIDs)
	assert.Empty(t, m.DestIDs)
	assert.Equal(t, 2, m.DestCount)
}
