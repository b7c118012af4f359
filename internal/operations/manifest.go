package operations

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Run and stage statuses
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// RunManifest records what a report run did: its stages, the files it
// produced, and how it ended.
type RunManifest struct {
	mu sync.RWMutex `json:"-"`

	// Identity
	ID        string    `json:"id"`
	Input     string    `json:"input"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time,omitempty"`

	Config map[string]interface{} `json:"config,omitempty"`

	// Execution tracking
	Stages  []StageExecution       `json:"stages"`
	Outputs map[string]*OutputInfo `json:"outputs"`
	Records int                    `json:"records"`

	Status      string    `json:"status"`
	LastUpdated time.Time `json:"last_updated"`
	Error       string    `json:"error,omitempty"`
}

// OutputInfo describes one file written by the run
type OutputInfo struct {
	Type      string    `json:"type"` // "workbook", "csv", "metrics"
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	Checksum  string    `json:"checksum"` // BLAKE2b-256, hex
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by"`
}

// StageExecution tracks the execution of a single stage
type StageExecution struct {
	StageID    string                 `json:"stage_id"`
	StageName  string                 `json:"stage_name"`
	StartTime  time.Time              `json:"start_time"`
	EndTime    time.Time              `json:"end_time"`
	Duration   string                 `json:"duration"`
	Status     string                 `json:"status"`
	OutputData []string               `json:"output_data,omitempty"`
	Error      string                 `json:"error,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// NewRunManifest creates a manifest for a run reading input
func NewRunManifest(runID, input string) *RunManifest {
	now := time.Now()
	return &RunManifest{
		ID:          runID,
		Input:       input,
		StartTime:   now,
		Outputs:     make(map[string]*OutputInfo),
		Stages:      []StageExecution{},
		Status:      StatusPending,
		LastUpdated: now,
	}
}

// SetConfig stores the effective settings of the run
func (m *RunManifest) SetConfig(cfg map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Config = cfg
	m.LastUpdated = time.Now()
}

// SetRecords stores the number of station records processed
func (m *RunManifest) SetRecords(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records = n
	m.LastUpdated = time.Now()
}

// RecordStageStart records the start of a stage execution
func (m *RunManifest) RecordStageStart(stageID, stageName string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	m.Status = StatusRunning
	m.LastUpdated = now

	for i, stage := range m.Stages {
		if stage.StageID == stageID {
			m.Stages[i].StartTime = now
			m.Stages[i].Status = StatusRunning
			return
		}
	}

	m.Stages = append(m.Stages, StageExecution{
		StageID:   stageID,
		StageName: stageName,
		StartTime: now,
		Status:    StatusRunning,
	})
}

// RecordStageCompletion records the completion of a stage
func (m *RunManifest) RecordStageCompletion(stageID string, outputData []string, metadata map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if stage := m.stage(stageID); stage != nil {
		stage.EndTime = time.Now()
		stage.Duration = stage.EndTime.Sub(stage.StartTime).String()
		stage.Status = StatusCompleted
		stage.OutputData = outputData
		stage.Metadata = metadata
	}
	m.LastUpdated = time.Now()
}

// RecordStageFailure records a stage failure and fails the run
func (m *RunManifest) RecordStageFailure(stageID string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if stage := m.stage(stageID); stage != nil {
		stage.EndTime = time.Now()
		stage.Duration = stage.EndTime.Sub(stage.StartTime).String()
		stage.Status = StatusFailed
		stage.Error = err.Error()
	}
	m.Status = StatusFailed
	m.Error = fmt.Sprintf("stage %s failed: %v", stageID, err)
	m.LastUpdated = time.Now()
}

// stage returns the execution entry for stageID. Callers hold mu.
func (m *RunManifest) stage(stageID string) *StageExecution {
	for i := range m.Stages {
		if m.Stages[i].StageID == stageID {
			return &m.Stages[i]
		}
	}
	return nil
}

// IsStageCompleted checks if a stage has been completed
func (m *RunManifest) IsStageCompleted(stageID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, stage := range m.Stages {
		if stage.StageID == stageID && stage.Status == StatusCompleted {
			return true
		}
	}
	return false
}

// AddOutput checksums the file at path and records it under key
func (m *RunManifest) AddOutput(key, outputType, path, createdBy string) error {
	sum, size, err := ChecksumFile(path)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Outputs[key] = &OutputInfo{
		Type:      outputType,
		Path:      path,
		Size:      size,
		Checksum:  sum,
		CreatedAt: time.Now(),
		CreatedBy: createdBy,
	}
	m.LastUpdated = time.Now()
	return nil
}

// Output returns the recorded output for key
func (m *RunManifest) Output(key string) (*OutputInfo, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out, ok := m.Outputs[key]
	return out, ok
}

// VerifyOutputs recomputes every output checksum and reports the first mismatch
func (m *RunManifest) VerifyOutputs() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for key, out := range m.Outputs {
		sum, _, err := ChecksumFile(out.Path)
		if err != nil {
			return fmt.Errorf("output %s: %w", key, err)
		}
		if sum != out.Checksum {
			return fmt.Errorf("output %s: checksum mismatch", key)
		}
	}
	return nil
}

// Complete marks the run as finished successfully
func (m *RunManifest) Complete() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.EndTime = time.Now()
	m.Status = StatusCompleted
	m.LastUpdated = m.EndTime
}

// Fail marks the run as failed. An earlier stage failure message is kept.
func (m *RunManifest) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.EndTime = time.Now()
	m.Status = StatusFailed
	if m.Error == "" && err != nil {
		m.Error = err.Error()
	}
	m.LastUpdated = m.EndTime
}

// SaveToFile saves the manifest to a JSON file
func (m *RunManifest) SaveToFile(path string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest file: %w", err)
	}

	return nil
}

// LoadManifestFromFile loads a manifest from a JSON file
func LoadManifestFromFile(path string) (*RunManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	var manifest RunManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}
	if manifest.Outputs == nil {
		manifest.Outputs = make(map[string]*OutputInfo)
	}

	return &manifest, nil
}

// ChecksumFile returns the hex BLAKE2b-256 digest and size of the file at path
func ChecksumFile(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return "", 0, err
	}

	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, fmt.Errorf("failed to hash %s: %w", path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), n, nil
}
