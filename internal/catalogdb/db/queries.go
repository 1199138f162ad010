package db

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{
		db: tx,
	}
}

const deleteDepartments = `-- name: DeleteDepartments :exec
delete from Department where term = ?
`

func (q *Queries) DeleteDepartments(ctx context.Context, term string) error {
	_, err := q.db.ExecContext(ctx, deleteDepartments, term)
	return err
}

const createDepartment = `-- name: CreateDepartment :exec
insert into Department(term, mnemonic, fetched_at) values (?, ?, ?)
on conflict do update set fetched_at = excluded.fetched_at
`

type CreateDepartmentParams struct {
	Term      string
	Mnemonic  string
	FetchedAt int64
}

func (q *Queries) CreateDepartment(ctx context.Context, arg CreateDepartmentParams) error {
	_, err := q.db.ExecContext(ctx, createDepartment, arg.Term, arg.Mnemonic, arg.FetchedAt)
	return err
}

const getDepartments = `-- name: GetDepartments :many
select mnemonic from Department where term = ? order by rowid
`

func (q *Queries) GetDepartments(ctx context.Context, term string) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, getDepartments, term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []string
	for rows.Next() {
		var mnemonic string
		if err := rows.Scan(&mnemonic); err != nil {
			return nil, err
		}
		items = append(items, mnemonic)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteCourses = `-- name: DeleteCourses :exec
delete from Course where term = ? and department = ?
`

type DeleteCoursesParams struct {
	Term       string
	Department string
}

func (q *Queries) DeleteCourses(ctx context.Context, arg DeleteCoursesParams) error {
	_, err := q.db.ExecContext(ctx, deleteCourses, arg.Term, arg.Department)
	return err
}

const createCourse = `-- name: CreateCourse :exec
insert into Course(
    term, department, idx, subject, catalog_nbr, descr, topic, instructor, units,
    class_capacity, wait_cap, days, start_time, end_time, facility_descr,
    acad_career, campus_descr, instruction_mode_descr, fetched_at
) values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type Course struct {
	Term                 string
	Department           string
	Idx                  int64
	Subject              string
	CatalogNbr           string
	Descr                string
	Topic                string
	Instructor           string
	Units                string
	ClassCapacity        int64
	WaitCap              int64
	Days                 string
	StartTime            string
	EndTime              string
	FacilityDescr        string
	AcadCareer           string
	CampusDescr          string
	InstructionModeDescr string
	FetchedAt            int64
}

func (q *Queries) CreateCourse(ctx context.Context, arg Course) error {
	_, err := q.db.ExecContext(ctx, createCourse,
		arg.Term,
		arg.Department,
		arg.Idx,
		arg.Subject,
		arg.CatalogNbr,
		arg.Descr,
		arg.Topic,
		arg.Instructor,
		arg.Units,
		arg.ClassCapacity,
		arg.WaitCap,
		arg.Days,
		arg.StartTime,
		arg.EndTime,
		arg.FacilityDescr,
		arg.AcadCareer,
		arg.CampusDescr,
		arg.InstructionModeDescr,
		arg.FetchedAt,
	)
	return err
}

const getCourses = `-- name: GetCourses :many
select
    term, department, idx, subject, catalog_nbr, descr, topic, instructor, units,
    class_capacity, wait_cap, days, start_time, end_time, facility_descr,
    acad_career, campus_descr, instruction_mode_descr, fetched_at
from Course
where term = ? and department = ?
order by idx
`

type GetCoursesParams struct {
	Term       string
	Department string
}

func (q *Queries) GetCourses(ctx context.Context, arg GetCoursesParams) ([]Course, error) {
	rows, err := q.db.QueryContext(ctx, getCourses, arg.Term, arg.Department)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Course
	for rows.Next() {
		var i Course
		if err := rows.Scan(
			&i.Term,
			&i.Department,
			&i.Idx,
			&i.Subject,
			&i.CatalogNbr,
			&i.Descr,
			&i.Topic,
			&i.Instructor,
			&i.Units,
			&i.ClassCapacity,
			&i.WaitCap,
			&i.Days,
			&i.StartTime,
			&i.EndTime,
			&i.FacilityDescr,
			&i.AcadCareer,
			&i.CampusDescr,
			&i.InstructionModeDescr,
			&i.FetchedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
