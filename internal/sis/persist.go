package sis

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DepartmentsFileName is where ListDepartments writes its mnemonics.
const DepartmentsFileName = "department_mnemonics.json"

// CoursesFileName is the file ListCourses writes to, ex. "CS_fall22.json".
func CoursesFileName(department string, term Term) string {
	return fmt.Sprintf("%s_%s.json", department, term)
}

// WriteJSON serializes v to path, overwriting whatever is there. nothing is written if v
// cannot be serialized.
func WriteJSON(path string, v any) error {
	contents, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: serialize %s: %w", ErrIO, path, err)
	}
	err = os.WriteFile(path, contents, 0644)
	if err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIO, path, err)
	}
	return nil
}

func outputPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}
