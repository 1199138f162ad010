package sis

import (
	"encoding/json"
	"errors"
	"testing"

	"sisuva-scraper/internal/telemetry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func testEntry(index int, catalog string) map[string]any {
	return map[string]any{
		"index":       index,
		"subject":     "CS",
		"catalog_nbr": catalog,
		"descr":       "Introduction to Programming",
		"topic":       "",
		"instructors": []any{
			map[string]any{"name": "Jane Doe", "email": "jd@virginia.edu"},
			map[string]any{"name": "John Roe", "email": "jr@virginia.edu"},
		},
		"units":          "3",
		"class_capacity": 300,
		"wait_cap":       100,
		"meetings": []any{
			map[string]any{
				"days":           "MoWeFr",
				"start_time":     "10.00.00.000000-05:00",
				"end_time":       "10.50.00.000000-05:00",
				"facility_descr": "Rice Hall 130",
			},
			map[string]any{
				"days":           "Tu",
				"start_time":     "14.00.00.000000-05:00",
				"end_time":       "14.50.00.000000-05:00",
				"facility_descr": "Olsson Hall 005",
			},
		},
		"acad_career":            "UGRD",
		"campus_descr":           "Main Campus",
		"instruction_mode_descr": "In Person",
		"class_nbr":              12345,
	}
}

func testRecord(index int, catalog string) CourseRecord {
	return CourseRecord{
		Index:            index,
		Subject:          "CS",
		CatalogNumber:    catalog,
		Description:      "Introduction to Programming",
		Topic:            "",
		Instructor:       "Jane Doe",
		Units:            "3",
		ClassCapacity:    300,
		WaitlistCapacity: 100,
		Days:             "MoWeFr",
		StartTime:        "10.00.00.000000-05:00",
		EndTime:          "10.50.00.000000-05:00",
		Facility:         "Rice Hall 130",
		AcademicCareer:   "UGRD",
		Campus:           "Main Campus",
		InstructionMode:  "In Person",
	}
}

func marshal(t testing.TB, v any) json.RawMessage {
	t.Helper()
	out, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestProjectDepartments(t *testing.T) {
	tel := telemetry.SetupForTesting(t, "test:sis")

	mnemonics, err := ProjectDepartments(
		json.RawMessage(`{"subjects":[{"subject":"CS"},{"subject":"MATH"}]}`),
		tel,
	)
	require.NoError(t, err)
	require.Equal(t, []string{"CS", "MATH"}, mnemonics)

	mnemonics, err = ProjectDepartments(
		json.RawMessage(`{"subjects":[{"subject":"ZFOR","descr":"Foreign Study"},{"subject":"AAS"},{"subject":"CS"}],"terms":[]}`),
		tel,
	)
	require.NoError(t, err)
	require.Equal(t, []string{"ZFOR", "AAS", "CS"}, mnemonics)

	mnemonics, err = ProjectDepartments(json.RawMessage(`{"subjects":[]}`), tel)
	require.NoError(t, err)
	require.Equal(t, []string{}, mnemonics)
}

func TestProjectDepartmentsErrors(t *testing.T) {
	tel := telemetry.SetupForTesting(t, "test:sis")

	_, err := ProjectDepartments(json.RawMessage(`{"careers":[]}`), tel)
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "subjects", missing.Field)
	require.Equal(t, -1, missing.Entry)

	_, err = ProjectDepartments(json.RawMessage(`{"subjects":[{"subject":"CS"},{"descr":"?"}]}`), tel)
	require.ErrorIs(t, err, ErrMissingField)
	require.ErrorAs(t, err, &missing)
	require.Equal(t, 1, missing.Entry)

	_, err = ProjectDepartments(json.RawMessage(`[1, 2, 3]`), tel)
	require.ErrorIs(t, err, ErrMalformedResponse)

	require.Len(t, tel.Reports("broken"), 3)
}

func TestProjectCourses(t *testing.T) {
	tel := telemetry.SetupForTesting(t, "test:sis")

	withoutMeetings := testEntry(1, "1111")
	withoutMeetings["meetings"] = []any{}
	numericCatalog := testEntry(3, "")
	numericCatalog["catalog_nbr"] = 2150

	testCases := []struct {
		name     string
		entries  []any
		expected []CourseRecord
	}{
		{
			name: "every entry kept",
			entries: []any{
				testEntry(0, "1010"),
				testEntry(1, "2100"),
			},
			expected: []CourseRecord{
				testRecord(0, "1010"),
				testRecord(1, "2100"),
			},
		},
		{
			name: "catalog number ceiling ends the pass",
			entries: []any{
				testEntry(0, "1010"),
				testEntry(1, "4999"),
				testEntry(2, "5000"),
				testEntry(3, "1020"),
			},
			expected: []CourseRecord{
				testRecord(0, "1010"),
				testRecord(1, "4999"),
			},
		},
		{
			name: "entries without meetings are skipped",
			entries: []any{
				testEntry(0, "1010"),
				withoutMeetings,
				testEntry(2, "2100"),
			},
			expected: []CourseRecord{
				testRecord(0, "1010"),
				testRecord(2, "2100"),
			},
		},
		{
			name: "empty entry ends the pass",
			entries: []any{
				testEntry(0, "1010"),
				testEntry(1, "1110"),
				map[string]any{},
				testEntry(3, "2100"),
			},
			expected: []CourseRecord{
				testRecord(0, "1010"),
				testRecord(1, "1110"),
			},
		},
		{
			name: "null entry ends the pass",
			entries: []any{
				testEntry(0, "1010"),
				nil,
				map[string]any{"garbage": true},
			},
			expected: []CourseRecord{
				testRecord(0, "1010"),
			},
		},
		{
			name: "numeric catalog numbers",
			entries: []any{
				numericCatalog,
			},
			expected: []CourseRecord{
				testRecord(3, "2150"),
			},
		},
		{
			name:     "empty page",
			entries:  []any{},
			expected: []CourseRecord{},
		},
		{
			name:     "first entry is empty",
			entries:  []any{map[string]any{}, testEntry(1, "1010")},
			expected: []CourseRecord{},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			records, err := ProjectCourses(marshal(t, test.entries), tel)
			require.NoError(t, err)
			if diff := cmp.Diff(test.expected, records); diff != "" {
				t.Fatalf("records differ (-expected +got):\n%s", diff)
			}
		})
	}
}

func TestProjectCoursesSkipDoesNotRequireLaterFields(t *testing.T) {
	tel := telemetry.SetupForTesting(t, "test:sis")

	skipped := testEntry(0, "1010")
	skipped["meetings"] = []any{}
	delete(skipped, "acad_career")
	delete(skipped, "campus_descr")

	ceiling := map[string]any{
		"index":       1,
		"subject":     "CS",
		"catalog_nbr": "6000",
	}

	records, err := ProjectCourses(marshal(t, []any{skipped, ceiling}), tel)
	require.NoError(t, err)
	require.Empty(t, records)

	debug := tel.Reports("debug")
	var messages []string
	for _, r := range debug {
		messages = append(messages, r.ID)
	}
	require.Contains(t, messages, "skipped entry without meetings")
	require.Contains(t, messages, "catalog number ceiling reached")
}

func TestProjectCoursesErrors(t *testing.T) {
	tel := telemetry.SetupForTesting(t, "test:sis")

	without := func(field string) map[string]any {
		e := testEntry(1, "2100")
		delete(e, field)
		return e
	}
	withMeeting := func(meeting map[string]any) map[string]any {
		e := testEntry(1, "2100")
		e["meetings"] = []any{meeting}
		return e
	}

	missingCases := []struct {
		entry map[string]any
		field string
	}{
		{entry: without("index"), field: "index"},
		{entry: without("catalog_nbr"), field: "catalog_nbr"},
		{entry: without("descr"), field: "descr"},
		{entry: without("instructors"), field: "instructors"},
		{entry: without("wait_cap"), field: "wait_cap"},
		{entry: without("meetings"), field: "meetings"},
		{entry: without("instruction_mode_descr"), field: "instruction_mode_descr"},
		{
			entry: func() map[string]any {
				e := testEntry(1, "2100")
				e["instructors"] = []any{}
				return e
			}(),
			field: "instructors[0]",
		},
		{
			entry: func() map[string]any {
				e := testEntry(1, "2100")
				e["instructors"] = []any{map[string]any{"email": "staff@virginia.edu"}}
				return e
			}(),
			field: "instructors[0].name",
		},
		{
			entry: withMeeting(map[string]any{
				"days":       "TuTh",
				"start_time": "11.00.00.000000-05:00",
				"end_time":   "12.15.00.000000-05:00",
			}),
			field: "meetings[0].facility_descr",
		},
	}

	for _, test := range missingCases {
		records, err := ProjectCourses(marshal(t, []any{testEntry(0, "1010"), test.entry}), tel)
		require.Nil(t, records)
		var missing *MissingFieldError
		require.True(t, errors.As(err, &missing), "expected missing field %s, got %v", test.field, err)
		require.Equal(t, test.field, missing.Field)
		require.Equal(t, 1, missing.Entry)
		require.ErrorIs(t, err, ErrMissingField)
	}

	malformedCases := []json.RawMessage{
		json.RawMessage(`{"subjects": []}`),
		marshal(t, []any{"not an object"}),
		marshal(t, []any{testEntry(0, "ten")}),
		marshal(t, []any{func() map[string]any {
			e := testEntry(0, "1010")
			e["class_capacity"] = "three hundred"
			return e
		}()}),
	}
	for _, raw := range malformedCases {
		_, err := ProjectCourses(raw, tel)
		require.ErrorIs(t, err, ErrMalformedResponse, string(raw))
	}
}
