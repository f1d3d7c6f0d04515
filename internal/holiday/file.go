package holiday

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/alexanderramin/casetrack/internal/calendar"
	"github.com/alexanderramin/casetrack/internal/domain"
	yaml "go.yaml.in/yaml/v3"
)

// File is a holiday calendar document.
type File struct {
	ID       string  `yaml:"id"`
	Name     string  `yaml:"name"`
	Holidays []Entry `yaml:"holidays"`
}

type Entry struct {
	Date string `yaml:"date"`
	Name string `yaml:"name"`
}

// LoadFile reads and validates a YAML holiday file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a YAML holiday document. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding holiday file: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) Validate() error {
	f.ID = strings.TrimSpace(f.ID)
	if f.ID == "" {
		return fmt.Errorf("holiday file: id is required")
	}
	seen := make(map[string]bool, len(f.Holidays))
	for i, h := range f.Holidays {
		if _, err := calendar.ParseDate(h.Date); err != nil {
			return fmt.Errorf("holidays[%d].date: invalid date format %q (expected YYYY-MM-DD)", i, h.Date)
		}
		if seen[h.Date] {
			return fmt.Errorf("holidays[%d].date: duplicate date %s", i, h.Date)
		}
		seen[h.Date] = true
	}
	return nil
}

// Calendar returns the calendar record described by the file.
func (f *File) Calendar() domain.Calendar {
	name := f.Name
	if name == "" {
		name = f.ID
	}
	return domain.Calendar{ID: f.ID, Name: name}
}

// ToHolidays converts the entries into domain records sorted by date.
func (f *File) ToHolidays() []domain.Holiday {
	out := make([]domain.Holiday, 0, len(f.Holidays))
	for _, h := range f.Holidays {
		d, err := calendar.ParseDate(h.Date)
		if err != nil {
			continue
		}
		out = append(out, domain.Holiday{CalendarID: f.ID, Date: d, Name: h.Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
