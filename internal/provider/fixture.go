package provider

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/vettedge/internal/candidates"
	"github.com/jonathan/vettedge/internal/schemas"
)

// Fixture is the on-disk form of a candidate data set.
type Fixture struct {
	Roles      []candidates.Role                 `json:"roles"`
	Candidates map[string][]candidates.Candidate `json:"candidates"`
}

// ParseFixture validates data against the fixture schema and decodes it.
func ParseFixture(data []byte) (*Fixture, error) {
	if err := schemas.ValidateFixture(data); err != nil {
		return nil, fmt.Errorf("invalid fixture: %w", err)
	}

	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}

	if err := f.Check(); err != nil {
		return nil, fmt.Errorf("invalid fixture: %w", err)
	}

	return &f, nil
}

// Check reports candidate lists filed under undeclared roles and candidate ids used
// more than once. Ids are unique across the whole fixture, not only within a role,
// because candidates are looked up by id alone.
func (f *Fixture) Check() error {
	for roleID := range f.Candidates {
		if _, ok := FindRole(f.Roles, roleID); !ok {
			return fmt.Errorf("candidates listed for unknown role %q", roleID)
		}
	}

	owner := make(map[string]string)
	for _, r := range f.Roles {
		for _, c := range f.Candidates[r.ID] {
			if prev, ok := owner[c.ID]; ok {
				return fmt.Errorf("candidate id %q appears under role %q and role %q", c.ID, prev, r.ID)
			}
			owner[c.ID] = r.ID
		}
	}
	return nil
}

// LoadFixture reads a fixture file and returns a provider serving its data.
func LoadFixture(path string) (*Memory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}

	f, err := ParseFixture(data)
	if err != nil {
		return nil, err
	}

	return NewMemory(f.Roles, f.Candidates), nil
}

// Snapshot captures everything m serves as a fixture.
func Snapshot(m *Memory) *Fixture {
	f := &Fixture{
		Roles:      append([]candidates.Role(nil), m.roles...),
		Candidates: make(map[string][]candidates.Candidate, len(m.roles)),
	}
	for _, r := range m.roles {
		f.Candidates[r.ID] = append([]candidates.Candidate{}, m.candidates[r.ID]...)
	}
	return f
}
