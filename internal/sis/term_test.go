package sis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTermCode(t *testing.T) {
	require.Equal(t, "1228", Term{Year: 22, Semester: Fall}.Code())
	require.Equal(t, "1232", Term{Year: 23, Semester: Spring}.Code())
	require.Equal(t, "1108", Term{Year: 10, Semester: Fall}.Code())
}

func TestURLs(t *testing.T) {
	endpoints := Endpoints{
		Departments: "https://example.com/options?institution=UVA01",
		Courses:     "https://example.com/search?institution=UVA01",
	}
	term := Term{Year: 22, Semester: Fall}

	require.Equal(
		t,
		"https://example.com/options?institution=UVA01&term=1228",
		DepartmentsURL(endpoints, term),
	)
	require.Equal(
		t,
		"https://example.com/search?institution=UVA01&term=1228&subject=CS&page=1",
		CoursesURL(endpoints, term, "CS"),
	)
}

func TestDefaultEndpoints(t *testing.T) {
	endpoints := DefaultEndpoints()
	term := Term{Year: 23, Semester: Spring}

	require.Equal(
		t,
		"https://sisuva.admin.virginia.edu/psc/ihprd/UVSS/SA/s/WEBLIB_HCX_CM.H_CLASS_SEARCH.FieldFormula.IScript_ClassSearchOptions?institution=UVA01&term=1232",
		DepartmentsURL(endpoints, term),
	)
	require.Equal(
		t,
		"https://sisuva.admin.virginia.edu/psc/ihprd/UVSS/SA/s/WEBLIB_HCX_CM.H_CLASS_SEARCH.FieldFormula.IScript_ClassSearch?institution=UVA01&term=1232&subject=MATH&page=1",
		CoursesURL(endpoints, term, "MATH"),
	)
}
