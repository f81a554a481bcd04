package task

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Persister writes and reads the store snapshot. Save is called after every
// mutation; Load once at startup. A Load with ok=false means no snapshot
// exists yet, which is not an error.
type Persister interface {
	Save(state State) error
	Load() (state State, ok bool, err error)
}

// FilePersister keeps the snapshot as a single indented JSON document,
// tasks.json inside the data directory.
type FilePersister struct {
	path string
}

func NewFilePersister(dataDir string) (*FilePersister, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &FilePersister{path: filepath.Join(dataDir, "tasks.json")}, nil
}

func (p *FilePersister) Save(state State) error {
	b, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p.path, b, 0o644)
}

func (p *FilePersister) Load() (State, bool, error) {
	b, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var state State
	if err := json.Unmarshal(b, &state); err != nil {
		return nil, false, err
	}
	if state == nil {
		state = State{}
	}
	return state, true, nil
}

// MemoryPersister backs tests and ephemeral deployments where the data
// directory is not writable.
type MemoryPersister struct {
	state State
	saved bool

	// FailSaves makes every Save return an error, for exercising the
	// swallow-and-log contract.
	FailSaves error
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{}
}

func (p *MemoryPersister) Save(state State) error {
	if p.FailSaves != nil {
		return p.FailSaves
	}
	p.state = cloneState(state)
	p.saved = true
	return nil
}

func (p *MemoryPersister) Load() (State, bool, error) {
	if !p.saved {
		return nil, false, nil
	}
	return cloneState(p.state), true, nil
}
