package sis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"sisuva-scraper/internal/telemetry"
)

const (
	report_project_courses     = "project.courses"
	report_project_departments = "project.departments"
)

// MaxCatalogNumber is the highest catalog number kept, anything above it is graduate level
// and beyond.
const MaxCatalogNumber = 4999

// CourseRecord is the reduced form of a single section returned by the class search.
type CourseRecord struct {
	Index            int    `json:"index"`
	Subject          string `json:"subject"`
	CatalogNumber    string `json:"catalog_nbr"`
	Description      string `json:"descr"`
	Topic            string `json:"topic"`
	Instructor       string `json:"instructor"`
	Units            string `json:"units"`
	ClassCapacity    int    `json:"class_capacity"`
	WaitlistCapacity int    `json:"wait_cap"`
	Days             string `json:"days"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	Facility         string `json:"facility_descr"`
	AcademicCareer   string `json:"acad_career"`
	Campus           string `json:"campus_descr"`
	InstructionMode  string `json:"instruction_mode_descr"`
}

type object map[string]json.RawMessage

// field decodes the value under `name`, `entry` is only used for error messages.
func field[T any](obj object, entry int, name string) (T, error) {
	return fieldAt[T](obj, entry, "", name)
}

// fieldAt is field for a nested object, `prefix` is the path of obj within the entry.
func fieldAt[T any](obj object, entry int, prefix, name string) (T, error) {
	var out T
	path := name
	if prefix != "" {
		path = prefix + "." + name
	}
	raw, ok := obj[name]
	if !ok {
		return out, &MissingFieldError{Entry: entry, Field: path}
	}
	err := json.Unmarshal(raw, &out)
	if err != nil {
		return out, fmt.Errorf("%w: entry %d: field %s: %w", ErrMalformedResponse, entry, path, err)
	}
	return out, nil
}

// catalogNumber accepts both "1010" and 1010.
type catalogNumber string

func (c *catalogNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = catalogNumber(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = catalogNumber(n.String())
	return nil
}

func (c catalogNumber) Int() (int, error) {
	return strconv.Atoi(strings.TrimSpace(string(c)))
}

// isFalsy reports whether an entry is one of null, false, 0, "", [] or {}.
func isFalsy(raw json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case float64:
		return x == 0
	case string:
		return x == ""
	case []any:
		return len(x) == 0
	case map[string]any:
		return len(x) == 0
	}
	return false
}

// ProjectDepartments returns the `subject` of every element of `subjects`, in order.
func ProjectDepartments(raw json.RawMessage, tel telemetry.API) ([]string, error) {
	var root object
	err := json.Unmarshal(raw, &root)
	if err != nil {
		tel.ReportBroken(report_project_departments, err)
		return nil, fmt.Errorf("%w: expected an object: %w", ErrMalformedResponse, err)
	}

	subjects, err := field[[]object](root, -1, "subjects")
	if err != nil {
		tel.ReportBroken(report_project_departments, err)
		return nil, err
	}

	mnemonics := make([]string, 0, len(subjects))
	for i, entry := range subjects {
		subject, err := field[string](entry, i, "subject")
		if err != nil {
			tel.ReportBroken(report_project_departments, err)
			return nil, err
		}
		mnemonics = append(mnemonics, subject)
	}

	tel.ReportCount(report_project_departments, int64(len(mnemonics)))
	return mnemonics, nil
}

// ProjectCourses walks the entries of a class search page in order.
//
// The pass stops at the first empty entry (the end of the page's data) or at the first
// catalog number above MaxCatalogNumber, entries are assumed to be sorted by catalog number.
// Entries with no meetings are skipped.
func ProjectCourses(raw json.RawMessage, tel telemetry.API) ([]CourseRecord, error) {
	var entries []json.RawMessage
	err := json.Unmarshal(raw, &entries)
	if err != nil {
		tel.ReportBroken(report_project_courses, err)
		return nil, fmt.Errorf("%w: expected an array: %w", ErrMalformedResponse, err)
	}

	records := []CourseRecord{}
	for i, rawEntry := range entries {
		if isFalsy(rawEntry) {
			tel.ReportDebug("end of data", i)
			break
		}

		record, keep, stop, err := projectCourse(rawEntry, i)
		if err != nil {
			tel.ReportBroken(report_project_courses, err)
			return nil, err
		}
		if stop {
			tel.ReportDebug("catalog number ceiling reached", i, record.CatalogNumber)
			break
		}
		if !keep {
			tel.ReportDebug("skipped entry without meetings", i, record.Subject, record.CatalogNumber)
			continue
		}
		records = append(records, record)
	}

	tel.ReportCount(report_project_courses, int64(len(records)))
	return records, nil
}

// projectCourse reads the fields of a single entry in the order they are needed, so a field
// that is only read after the entry is skipped (or the pass is stopped) is never required.
func projectCourse(raw json.RawMessage, i int) (record CourseRecord, keep, stop bool, err error) {
	var entry object
	err = json.Unmarshal(raw, &entry)
	if err != nil {
		return record, false, false, fmt.Errorf("%w: entry %d: expected an object: %w", ErrMalformedResponse, i, err)
	}

	if record.Index, err = field[int](entry, i, "index"); err != nil {
		return
	}
	if record.Subject, err = field[string](entry, i, "subject"); err != nil {
		return
	}
	catalog, err := field[catalogNumber](entry, i, "catalog_nbr")
	if err != nil {
		return
	}
	record.CatalogNumber = string(catalog)

	number, err := catalog.Int()
	if err != nil {
		return record, false, false, fmt.Errorf("%w: entry %d: catalog_nbr %q is not an integer", ErrMalformedResponse, i, catalog)
	}
	if number > MaxCatalogNumber {
		return record, false, true, nil
	}

	if record.Description, err = field[string](entry, i, "descr"); err != nil {
		return
	}
	if record.Topic, err = field[string](entry, i, "topic"); err != nil {
		return
	}
	instructors, err := field[[]object](entry, i, "instructors")
	if err != nil {
		return
	}
	if len(instructors) == 0 {
		return record, false, false, &MissingFieldError{Entry: i, Field: "instructors[0]"}
	}
	if record.Instructor, err = fieldAt[string](instructors[0], i, "instructors[0]", "name"); err != nil {
		return
	}
	if record.Units, err = field[string](entry, i, "units"); err != nil {
		return
	}

	if record.ClassCapacity, err = field[int](entry, i, "class_capacity"); err != nil {
		return
	}
	if record.WaitlistCapacity, err = field[int](entry, i, "wait_cap"); err != nil {
		return
	}

	meetings, err := field[[]object](entry, i, "meetings")
	if err != nil {
		return
	}
	if len(meetings) == 0 {
		return record, false, false, nil
	}

	meeting := meetings[0]
	if record.Days, err = fieldAt[string](meeting, i, "meetings[0]", "days"); err != nil {
		return
	}
	if record.StartTime, err = fieldAt[string](meeting, i, "meetings[0]", "start_time"); err != nil {
		return
	}
	if record.EndTime, err = fieldAt[string](meeting, i, "meetings[0]", "end_time"); err != nil {
		return
	}
	if record.Facility, err = fieldAt[string](meeting, i, "meetings[0]", "facility_descr"); err != nil {
		return
	}

	if record.AcademicCareer, err = field[string](entry, i, "acad_career"); err != nil {
		return
	}
	if record.Campus, err = field[string](entry, i, "campus_descr"); err != nil {
		return
	}
	if record.InstructionMode, err = field[string](entry, i, "instruction_mode_descr"); err != nil {
		return
	}

	return record, true, false, nil
}
