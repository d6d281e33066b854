package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/lib"
	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

// CheckpointStore persists pipeline state between steps so an interrupted
// run can resume where it stopped.
type CheckpointStore interface {
	Save(name string, state *models.PipelineState) error
	Load(name string) (*models.PipelineState, error)
	List() ([]CheckpointInfo, error)
	Delete(name string) error
}

// CheckpointInfo summarizes a stored checkpoint for listing
type CheckpointInfo struct {
	Name    string    `json:"name"`
	Step    string    `json:"step"`
	SavedAt time.Time `json:"saved_at"`
}

// checkpointDocument is the on-disk envelope around the pipeline state
type checkpointDocument struct {
	Name    string               `json:"name"`
	SavedAt time.Time            `json:"saved_at"`
	State   models.PipelineState `json:"state"`
}

// checkpointSchema validates the structural shape of a checkpoint document
// before the state inside it is trusted
const checkpointSchema = `{
	"type": "object",
	"required": ["name", "saved_at", "state"],
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"saved_at": {"type": "string"},
		"state": {
			"type": "object",
			"required": ["current_step", "completed_steps"],
			"properties": {
				"current_step": {"type": "string"},
				"completed_steps": {"type": "array", "items": {"type": "string"}}
			}
		}
	}
}`

// FileCheckpointStore keeps one JSON document per checkpoint in a directory.
// Writes go through a temp file and rename so a crash mid-write never leaves
// a truncated checkpoint behind.
type FileCheckpointStore struct {
	dir    string
	schema *gojsonschema.Schema
}

// NewFileCheckpointStore creates the store, its directory and the document
// schema validator
func NewFileCheckpointStore(dir string) (*FileCheckpointStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create checkpoint directory: %w", err)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(checkpointSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile checkpoint schema: %w", err)
	}

	return &FileCheckpointStore{dir: dir, schema: schema}, nil
}

func (s *FileCheckpointStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Save writes the state under the given checkpoint name
func (s *FileCheckpointStore) Save(name string, state *models.PipelineState) error {
	if err := state.Validate(); err != nil {
		return fmt.Errorf("cannot save invalid pipeline state: %w", err)
	}

	doc := checkpointDocument{
		Name:    name,
		SavedAt: time.Now().UTC(),
		State:   *state,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return lib.ErrCheckpointFailure(name, err)
	}

	// Temp file + rename keeps the write atomic
	tempFile := filepath.Join(s.dir, fmt.Sprintf(".checkpoint.tmp.%s", uuid.New().String()))
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return lib.ErrCheckpointFailure(name, err)
	}

	if err := os.Rename(tempFile, s.path(name)); err != nil {
		_ = os.Remove(tempFile)
		return lib.ErrCheckpointFailure(name, err)
	}

	return nil
}

// Load reads a checkpoint back, validating the document shape and the state
func (s *FileCheckpointStore) Load(name string) (*models.PipelineState, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, lib.ErrCheckpointNotFound(name)
		}
		return nil, lib.ErrCheckpointFailure(name, err)
	}

	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, lib.ErrCorruptedCheckpoint(name, err)
	}
	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return nil, lib.ErrCorruptedCheckpoint(name, fmt.Errorf("schema violations: %s", strings.Join(problems, "; ")))
	}

	var doc checkpointDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, lib.ErrCorruptedCheckpoint(name, err)
	}

	if err := doc.State.Validate(); err != nil {
		return nil, lib.ErrCorruptedCheckpoint(name, err)
	}

	return &doc.State, nil
}

// List returns every stored checkpoint sorted by save time, newest first
func (s *FileCheckpointStore) List() ([]CheckpointInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []CheckpointInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read checkpoint directory: %w", err)
	}

	infos := []CheckpointInfo{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			continue
		}

		var doc checkpointDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			// Unreadable documents are skipped in listings
			continue
		}

		infos = append(infos, CheckpointInfo{
			Name:    doc.Name,
			Step:    string(doc.State.CurrentStep),
			SavedAt: doc.SavedAt,
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].SavedAt.After(infos[j].SavedAt)
	})

	return infos, nil
}

// Delete removes a stored checkpoint
func (s *FileCheckpointStore) Delete(name string) error {
	if err := os.Remove(s.path(name)); err != nil {
		if os.IsNotExist(err) {
			return lib.ErrCheckpointNotFound(name)
		}
		return lib.ErrCheckpointFailure(name, err)
	}
	return nil
}
