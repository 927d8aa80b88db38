package repository

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debtledger-backend/models"
)

func newTestRepo(t *testing.T) (*DebtRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "debts.json")
	repo, err := NewDebtRepository(path, log.New(io.Discard, "", 0))
	require.NoError(t, err)
	return repo, path
}

func sampleRecord(id string) models.DebtRecord {
	return models.DebtRecord{
		ID: id,
		Debtor: models.Debtor{
			Name:  "Ana",
			TaxID: "12345678901",
			Email: "a@x.com",
		},
		Amount:      150.5,
		Description: "Loan",
		Status:      models.StatusPending,
	}
}

func TestNewDebtRepository_SeedsEmptyDocument(t *testing.T) {
	_, path := newTestRepo(t)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestDebtRepository_LoadEmpty(t *testing.T) {
	repo, _ := newTestRepo(t)

	records := repo.Load()
	require.NotNil(t, records)
	assert.Empty(t, records)
}

func TestDebtRepository_ReplaceLoadRoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)

	want := []models.DebtRecord{sampleRecord("a"), sampleRecord("b")}
	require.NoError(t, repo.Replace(want))

	got := repo.Load()
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, 150.5, got[0].Amount)
	assert.Equal(t, models.StatusPending, got[0].Status)
}

func TestDebtRepository_LoadDegradesOnCorruptDocument(t *testing.T) {
	repo, path := newTestRepo(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	records := repo.Load()
	require.NotNil(t, records)
	assert.Empty(t, records)
}

func TestDebtRepository_LoadDegradesOnMissingDocument(t *testing.T) {
	repo, path := newTestRepo(t)
	require.NoError(t, os.Remove(path))

	records := repo.Load()
	require.NotNil(t, records)
	assert.Empty(t, records)
}

func TestDebtRepository_ReplaceNilWritesEmptyArray(t *testing.T) {
	repo, path := newTestRepo(t)

	require.NoError(t, repo.Replace(nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestDebtRepository_ReplaceOverwritesWholeDocument(t *testing.T) {
	repo, _ := newTestRepo(t)

	require.NoError(t, repo.Replace([]models.DebtRecord{sampleRecord("a"), sampleRecord("b")}))
	require.NoError(t, repo.Replace([]models.DebtRecord{sampleRecord("c")}))

	got := repo.Load()
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].ID)
}

func TestDebtRepository_MutateAppends(t *testing.T) {
	repo, _ := newTestRepo(t)

	err := repo.Mutate(func(records []models.DebtRecord) ([]models.DebtRecord, error) {
		return append(records, sampleRecord("a")), nil
	})
	require.NoError(t, err)

	got := repo.Load()
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestDebtRepository_MutateErrorLeavesDocumentUntouched(t *testing.T) {
	repo, _ := newTestRepo(t)
	require.NoError(t, repo.Replace([]models.DebtRecord{sampleRecord("a")}))

	wantErr := errors.New("boom")
	err := repo.Mutate(func(records []models.DebtRecord) ([]models.DebtRecord, error) {
		return nil, wantErr
	})
	require.ErrorIs(t, err, wantErr)

	got := repo.Load()
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}
