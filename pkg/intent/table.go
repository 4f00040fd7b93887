package intent

import (
	"errors"
	"fmt"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var (
	ErrEmptyTable     = errors.New("intent table is empty")
	ErrEmptyLabel     = errors.New("intent label is empty")
	ErrDuplicateLabel = errors.New("duplicate intent label")
	ErrEmptyKeyword   = errors.New("intent keyword is empty")
)

// DefaultTable is the built-in health FAQ keyword table.
func DefaultTable() Table {
	return Table{
		{
			Label:    "malaria_prevention",
			Keywords: []string{"malaria", "mosquito", "mosquitoes", "insect", "bite", "bites", "prevent"},
		},
		{
			Label:    "dengue_symptoms",
			Keywords: []string{"dengue", "joint", "pain", "eyes", "headache"},
		},
		{
			Label:    "covid_symptoms",
			Keywords: []string{"covid", "cough", "fever", "taste", "smell", "tiredness", "sars"},
		},
		{
			Label:    "common_cold_treatment",
			Keywords: []string{"cold", "runny", "nose", "sneeze", "sore", "throat"},
		},
		{
			Label:    "newborn_vaccination",
			Keywords: []string{"newborn", "baby", "babies", "vaccine", "vaccination", "schedule", "shot", "shots"},
		},
	}
}

// LoadTable reads a JSON array of {"intent", "keywords"} objects. The array
// order is kept as the tie-break order.
func LoadTable(path string) (Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read intent table: %w", err)
	}

	var table Table
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("decode intent table: %w", err)
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}

	return table, nil
}

// LoadTableOrDefault loads path when set, otherwise returns DefaultTable.
func LoadTableOrDefault(path string) (Table, error) {
	if path == "" {
		return DefaultTable(), nil
	}
	return LoadTable(path)
}

func (t Table) Validate() error {
	if len(t) == 0 {
		return ErrEmptyTable
	}

	seen := make(map[string]struct{}, len(t))
	for i, e := range t {
		if e.Label == "" {
			return fmt.Errorf("entry %d: %w", i, ErrEmptyLabel)
		}
		if e.Label == FallbackLabel {
			return fmt.Errorf("entry %d: %q is reserved", i, FallbackLabel)
		}
		if _, dup := seen[e.Label]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateLabel, e.Label)
		}
		seen[e.Label] = struct{}{}

		for _, kw := range e.Keywords {
			if strings.TrimSpace(normalize(kw)) == "" {
				return fmt.Errorf("intent %s: %w", e.Label, ErrEmptyKeyword)
			}
		}
	}

	return nil
}
