package mapping

import (
	"github.com/google/uuid"

	"datamapper/internal/document"
)

// LookupEntry translates one source enum value into one target enum value.
type LookupEntry struct {
	SourceValue string
	SourceType  document.FieldType
	TargetValue string
	TargetType  document.FieldType
}

// LookupTable is a named enum translation table used by ENUM mappings.
type LookupTable struct {
	Name        string
	Description string
	Entries     []LookupEntry
}

// NewLookupTable returns an empty table with a generated name.
func NewLookupTable() *LookupTable {
	return &LookupTable{Name: uuid.NewString()}
}

// Get returns the entry for a source value.
func (t *LookupTable) Get(sourceValue string) (LookupEntry, bool) {
	for _, e := range t.Entries {
		if e.SourceValue == sourceValue {
			return e, true
		}
	}

	return LookupEntry{}, false
}

// Put adds the entry or replaces the one with the same source value.
func (t *LookupTable) Put(entry LookupEntry) {
	for i := range t.Entries {
		if t.Entries[i].SourceValue == entry.SourceValue {
			t.Entries[i] = entry

			return
		}
	}

	t.Entries = append(t.Entries, entry)
}

// Initialize adds an entry without a target value for every enum constant
// of source that has no entry yet.
func (t *LookupTable) Initialize(source, target *document.Field) {
	for _, v := range source.EnumValues {
		if _, ok := t.Get(v.Name); ok {
			continue
		}

		t.Entries = append(t.Entries, LookupEntry{
			SourceValue: v.Name,
			SourceType:  document.TypeString,
			TargetType:  document.TypeString,
		})
	}

	if target == nil {
		return
	}

	valid := map[string]bool{}
	for _, v := range target.EnumValues {
		valid[v.Name] = true
	}

	for i := range t.Entries {
		if t.Entries[i].TargetValue != "" && !valid[t.Entries[i].TargetValue] {
			t.Entries[i].TargetValue = ""
		}
	}
}
