package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/filatrack/filatrack/api/models"
)

func openTestLocal(t *testing.T) *LocalStore {
	t.Helper()
	local, err := OpenLocal(filepath.Join(t.TempDir(), "filatrack_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { local.Close() })
	return local
}

func TestLocalLoadBeforeFirstSaveReturnsNil(t *testing.T) {
	local := openTestLocal(t)
	got, err := local.Load()
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestLocalRoundTrip(t *testing.T) {
	local := openTestLocal(t)

	price := 19.99
	saved := models.Collections{
		Filaments: []models.Filament{
			{ID: "f1", Name: "Black PLA", Material: "PLA", TotalWeight: 1000, RemainingWeight: 420.5, Price: &price},
			{ID: "f2", Name: "Clear PETG", Material: "PETG", TotalWeight: 1000, RemainingWeight: 0},
		},
		PrintedParts: []models.PrintedPart{
			{ID: "p1", Name: "Stand", FilamentID: "f1", WeightUsed: 45.5, PrintTime: 180, PrintDate: "2026-02-01"},
		},
		Projects: []models.Project{{ID: "pr1", Name: "Desk"}},
	}
	require.NoError(t, local.Save(saved))

	got, err := local.Load()
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, saved, *got)

	// Unset optional fields round-trip as absent, not as zero values
	require.Nil(t, got.Filaments[1].Price)
}

func TestLocalSaveOverwrites(t *testing.T) {
	local := openTestLocal(t)

	require.NoError(t, local.Save(models.Collections{
		Filaments: []models.Filament{{ID: "f1"}},
	}.Normalized()))
	require.NoError(t, local.Save(models.Collections{}.Normalized()))

	got, err := local.Load()
	require.NoError(t, err)
	require.Empty(t, got.Filaments)
}

func TestStoreReloadsFromLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filatrack_test.db")

	local, err := OpenLocal(path)
	require.NoError(t, err)
	s := New(local, nil, false, zerolog.Nop())
	require.NoError(t, s.Open(context.Background()))
	f := addSpool(s, 500, 1000)
	s.AddPrintedPart(models.PrintedPart{Name: "Gear", FilamentID: f.ID, WeightUsed: 100})
	require.NoError(t, local.Close())

	reopened, err := OpenLocal(path)
	require.NoError(t, err)
	defer reopened.Close()
	s2 := New(reopened, nil, false, zerolog.Nop())
	require.NoError(t, s2.Open(context.Background()))

	require.Equal(t, 400.0, remaining(t, s2, f.ID))
	require.Len(t, s2.Snapshot().PrintedParts, 1)
}
