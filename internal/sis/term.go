package sis

import "fmt"

const (
	defaultDepartmentsEndpoint = "https://sisuva.admin.virginia.edu/psc/ihprd/UVSS/SA/s/WEBLIB_HCX_CM.H_CLASS_SEARCH.FieldFormula" +
		".IScript_ClassSearchOptions?institution=UVA01"
	defaultCoursesEndpoint = "https://sisuva.admin.virginia.edu/psc/ihprd/UVSS/SA/s/WEBLIB_HCX_CM.H_CLASS_SEARCH.FieldFormula" +
		".IScript_ClassSearch?institution=UVA01"
)

// Endpoints are the base urls (including the institution parameter) queried by the client.
type Endpoints struct {
	Departments string `json:"departments"`
	Courses     string `json:"courses"`
}

func DefaultEndpoints() Endpoints {
	return Endpoints{
		Departments: defaultDepartmentsEndpoint,
		Courses:     defaultCoursesEndpoint,
	}
}

// Term is a validated year and semester, construct it with Validate.
type Term struct {
	Year     int
	Semester Semester
}

// Code returns the term code, ex. 22 fall is "1228".
func (t Term) Code() string {
	code, err := t.Semester.Code()
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf("1%02d%s", t.Year, code)
}

func (t Term) String() string {
	return fmt.Sprintf("%s%02d", t.Semester, t.Year)
}

func DepartmentsURL(endpoints Endpoints, term Term) string {
	return endpoints.Departments + "&term=" + term.Code()
}

// CoursesURL only ever asks for the first page.
// department is not escaped, it must already be url safe.
func CoursesURL(endpoints Endpoints, term Term, department string) string {
	return endpoints.Courses + "&term=" + term.Code() + "&subject=" + department + "&page=1"
}
