// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Field is one descriptive value of a ConfigurationRecord. The key is the
// fixed field name (e.g. "p_Email"); the value is the plain string the user
// entered, possibly empty.
type Field struct {
	Key   string `json:"key" yaml:"key" toml:"key"`
	Value string `json:"value" yaml:"value" toml:"value"`
}

// Field keys in declared order. Photographer keys carry the "p_" prefix,
// client keys the "c_" prefix.
const (
	PhotographerPrefix = "p_"
	ClientPrefix       = "c_"

	KeyAbstract = "Abstract"
	KeyProcess  = "Process"
)

// contactFields are the suffixes shared by the photographer and client
// field sets.
var contactFields = []string{
	"Organization", "Name", "Address", "City", "State", "Zip", "Phone", "Email",
}

// FieldKeys is the complete, ordered key set of a ConfigurationRecord.
var FieldKeys = buildFieldKeys()

func buildFieldKeys() []string {
	keys := make([]string, 0, 2*len(contactFields)+2)
	for _, f := range contactFields {
		keys = append(keys, PhotographerPrefix+f)
	}
	for _, f := range contactFields {
		keys = append(keys, ClientPrefix+f)
	}
	return append(keys, KeyAbstract, KeyProcess)
}

// IsFieldKey reports whether key belongs to the fixed key set.
func IsFieldKey(key string) bool {
	for _, k := range FieldKeys {
		if k == key {
			return true
		}
	}
	return false
}

// SectionName identifies one of the four optional descriptive groups.
type SectionName string

const (
	SectionPhotographer SectionName = "photographer"
	SectionClient       SectionName = "client"
	SectionAbstract     SectionName = "abstract"
	SectionProcess      SectionName = "process"
)

// SectionNames lists the sections in document order.
var SectionNames = []SectionName{
	SectionPhotographer,
	SectionClient,
	SectionAbstract,
	SectionProcess,
}

// Element returns the name of the document node that holds the section.
func (s SectionName) Element() string {
	if s == SectionProcess {
		return "process-steps"
	}
	return string(s)
}

// ParseSectionName resolves a user-supplied section name. It accepts the
// section name and its element name, case-insensitively.
func ParseSectionName(s string) (SectionName, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, n := range SectionNames {
		if s == string(n) || s == n.Element() {
			return n, true
		}
	}
	return "", false
}

// SectionToggles holds the four independent section switches.
type SectionToggles struct {
	Photographer bool `json:"photographer" yaml:"photographer" toml:"photographer"`
	Client       bool `json:"client" yaml:"client" toml:"client"`
	Abstract     bool `json:"abstract" yaml:"abstract" toml:"abstract"`
	Process      bool `json:"process" yaml:"process" toml:"process"`
}

// ConfigurationRecord is the complete set of user-supplied descriptive
// fields and section toggles for one batch run. Fields always hold every
// key of FieldKeys, in that order.
type ConfigurationRecord struct {
	Fields  []Field        `json:"fields" yaml:"fields"`
	Toggles SectionToggles `json:"sections" yaml:"sections"`
}

// NewConfigurationRecord returns a record with every field empty and every
// section enabled.
func NewConfigurationRecord() ConfigurationRecord {
	fields := make([]Field, len(FieldKeys))
	for i, k := range FieldKeys {
		fields[i] = Field{Key: k}
	}
	return ConfigurationRecord{
		Fields: fields,
		Toggles: SectionToggles{
			Photographer: true,
			Client:       true,
			Abstract:     true,
			Process:      true,
		},
	}
}

// Value returns the value stored under key.
func (r ConfigurationRecord) Value(key string) (string, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Set stores value under key. Keys outside the fixed key set are rejected.
func (r *ConfigurationRecord) Set(key, value string) error {
	if !IsFieldKey(key) {
		return &ConfigurationError{Key: key, Reason: "unknown field key"}
	}
	for i := range r.Fields {
		if r.Fields[i].Key == key {
			r.Fields[i].Value = value
			return nil
		}
	}
	return &ConfigurationError{Key: key, Reason: "field missing from record"}
}

// Toggle reports whether the named section is enabled.
func (r ConfigurationRecord) Toggle(name SectionName) bool {
	switch name {
	case SectionPhotographer:
		return r.Toggles.Photographer
	case SectionClient:
		return r.Toggles.Client
	case SectionAbstract:
		return r.Toggles.Abstract
	case SectionProcess:
		return r.Toggles.Process
	}
	return false
}

// SetToggle enables or disables the named section.
func (r *ConfigurationRecord) SetToggle(name SectionName, on bool) error {
	switch name {
	case SectionPhotographer:
		r.Toggles.Photographer = on
	case SectionClient:
		r.Toggles.Client = on
	case SectionAbstract:
		r.Toggles.Abstract = on
	case SectionProcess:
		r.Toggles.Process = on
	default:
		return &ConfigurationError{Key: string(name), Reason: "unknown section"}
	}
	return nil
}

// Validate checks that the record holds exactly the fixed key set in
// declared order.
func (r ConfigurationRecord) Validate() error {
	if len(r.Fields) != len(FieldKeys) {
		for _, k := range FieldKeys {
			if _, ok := r.Value(k); !ok {
				return &ConfigurationError{Key: k, Reason: "field missing from record"}
			}
		}
		return &ConfigurationError{Reason: "record has duplicate or extra fields"}
	}
	for i, f := range r.Fields {
		if f.Key != FieldKeys[i] {
			if !IsFieldKey(f.Key) {
				return &ConfigurationError{Key: f.Key, Reason: "unknown field key"}
			}
			return &ConfigurationError{Key: f.Key, Reason: "field out of order"}
		}
	}
	return nil
}
