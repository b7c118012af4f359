package operations

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunManifest(t *testing.T) {
	t.Run("NewManifest", func(t *testing.T) {
		manifest := NewRunManifest("run-123", "data/input/KidStationsDocs.xlsx")

		assert.NotNil(t, manifest)
		assert.Equal(t, "run-123", manifest.ID)
		assert.Equal(t, "data/input/KidStationsDocs.xlsx", manifest.Input)
		assert.Equal(t, StatusPending, manifest.Status)
		assert.NotNil(t, manifest.Outputs)
		assert.Empty(t, manifest.Stages)
	})

	t.Run("RecordStageExecution", func(t *testing.T) {
		manifest := NewRunManifest("run-123", "in.xlsx")

		manifest.RecordStageStart("normalize", "Normalize records")
		require.Len(t, manifest.Stages, 1)
		assert.Equal(t, StatusRunning, manifest.Stages[0].Status)
		assert.Equal(t, StatusRunning, manifest.Status)

		manifest.RecordStageCompletion("normalize", []string{"stations"}, map[string]interface{}{"records": 3})
		assert.Equal(t, StatusCompleted, manifest.Stages[0].Status)
		assert.Contains(t, manifest.Stages[0].OutputData, "stations")
		assert.NotEmpty(t, manifest.Stages[0].Duration)
		assert.True(t, manifest.IsStageCompleted("normalize"))
	})

	t.Run("RestartedStageReusesEntry", func(t *testing.T) {
		manifest := NewRunManifest("run-123", "in.xlsx")
		manifest.RecordStageStart("read", "Read")
		manifest.RecordStageStart("read", "Read")
		assert.Len(t, manifest.Stages, 1)
	})

	t.Run("IsStageCompleted", func(t *testing.T) {
		manifest := NewRunManifest("run-123", "in.xlsx")

		assert.False(t, manifest.IsStageCompleted("read"))

		manifest.RecordStageStart("read", "Read")
		assert.False(t, manifest.IsStageCompleted("read"))
	})

	t.Run("StageFailure", func(t *testing.T) {
		manifest := NewRunManifest("run-123", "in.xlsx")

		manifest.RecordStageStart("read", "Read")
		manifest.RecordStageFailure("read", errors.New("missing column"))

		assert.Equal(t, StatusFailed, manifest.Stages[0].Status)
		assert.Equal(t, "missing column", manifest.Stages[0].Error)
		assert.Equal(t, StatusFailed, manifest.Status)
		assert.Contains(t, manifest.Error, "stage read failed")

		// Fail keeps the stage message
		manifest.Fail(errors.New("later"))
		assert.Contains(t, manifest.Error, "stage read failed")
		assert.False(t, manifest.EndTime.IsZero())
	})

	t.Run("Complete", func(t *testing.T) {
		manifest := NewRunManifest("run-123", "in.xlsx")
		manifest.SetRecords(42)
		manifest.Complete()

		assert.Equal(t, StatusCompleted, manifest.Status)
		assert.Equal(t, 42, manifest.Records)
		assert.False(t, manifest.EndTime.IsZero())
	})
}

func TestRunManifestOutputs(t *testing.T) {
	dir := t.TempDir()
	report := filepath.Join(dir, "report.xlsx")
	require.NoError(t, os.WriteFile(report, []byte("workbook bytes"), 0644))

	manifest := NewRunManifest("run-1", "in.xlsx")
	require.NoError(t, manifest.AddOutput("workbook", "workbook", report, "write"))

	out, ok := manifest.Output("workbook")
	require.True(t, ok)
	assert.Equal(t, int64(len("workbook bytes")), out.Size)
	assert.Len(t, out.Checksum, 64)
	assert.Equal(t, "write", out.CreatedBy)

	require.NoError(t, manifest.VerifyOutputs())

	require.NoError(t, os.WriteFile(report, []byte("tampered"), 0644))
	err := manifest.VerifyOutputs()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")

	err = manifest.AddOutput("missing", "csv", filepath.Join(dir, "absent.csv"), "csv")
	assert.Error(t, err)
}

func TestChecksumFile(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	require.NoError(t, os.WriteFile(a, []byte("same"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("same"), 0644))

	sumA, sizeA, err := ChecksumFile(a)
	require.NoError(t, err)
	sumB, _, err := ChecksumFile(b)
	require.NoError(t, err)

	assert.Equal(t, sumA, sumB)
	assert.Equal(t, int64(4), sizeA)

	// BLAKE2b-256 of the empty input
	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	sum, _, err := ChecksumFile(empty)
	require.NoError(t, err)
	assert.Equal(t, "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8", sum)
}

func TestManifestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "run_manifest.json")

	manifest := NewRunManifest("run-9", "in.xlsx")
	manifest.SetConfig(map[string]interface{}{"header_row": 1})
	manifest.RecordStageStart("read", "Read")
	manifest.RecordStageCompletion("read", nil, nil)
	manifest.Complete()

	require.NoError(t, manifest.SaveToFile(path))

	loaded, err := LoadManifestFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "run-9", loaded.ID)
	assert.Equal(t, StatusCompleted, loaded.Status)
	require.Len(t, loaded.Stages, 1)
	assert.Equal(t, "read", loaded.Stages[0].StageID)
	assert.NotNil(t, loaded.Outputs)

	_, err = LoadManifestFromFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
