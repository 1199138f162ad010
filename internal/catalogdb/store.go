package catalogdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sisuva-scraper/internal/catalogdb/db"
	"sisuva-scraper/internal/sis"

	_ "modernc.org/sqlite"
)

func wrapOpenDB(err error) error {
	return fmt.Errorf("open db: %w", err)
}

// OpenDB opens (creating it if necessary) a sqlite database at path and applies the schema.
func OpenDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		err := os.MkdirAll(filepath.Dir(path), 0777)
		if err != nil {
			return nil, wrapOpenDB(err)
		}
	}

	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, wrapOpenDB(err)
	}

	// sqlite only supports a single writer
	database.SetMaxOpenConns(1)
	_, err = database.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		database.Close()
		return nil, wrapOpenDB(err)
	}
	_, err = database.Exec(db.Schema)
	if err != nil {
		database.Close()
		return nil, wrapOpenDB(err)
	}

	return database, nil
}

// Store keeps the latest snapshot of each term's departments and each department's courses.
type Store struct {
	db  *sql.DB
	qry *db.Queries
}

func NewStore(database *sql.DB) Store {
	return Store{
		db:  database,
		qry: db.New(database),
	}
}

// SaveDepartments replaces the departments stored for the term.
func (s Store) SaveDepartments(ctx context.Context, term sis.Term, mnemonics []string, fetchedAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	err = txqry.DeleteDepartments(ctx, term.Code())
	if err != nil {
		return err
	}
	for _, mnemonic := range mnemonics {
		err = txqry.CreateDepartment(ctx, db.CreateDepartmentParams{
			Term:      term.Code(),
			Mnemonic:  mnemonic,
			FetchedAt: fetchedAt.Unix(),
		})
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s Store) GetDepartments(ctx context.Context, term sis.Term) ([]string, error) {
	return s.qry.GetDepartments(ctx, term.Code())
}

// SaveCourses replaces the courses stored for the department in the term.
func (s Store) SaveCourses(ctx context.Context, term sis.Term, department string, records []sis.CourseRecord, fetchedAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	err = txqry.DeleteCourses(ctx, db.DeleteCoursesParams{
		Term:       term.Code(),
		Department: department,
	})
	if err != nil {
		return err
	}
	for _, r := range records {
		err = txqry.CreateCourse(ctx, db.Course{
			Term:                 term.Code(),
			Department:           department,
			Idx:                  int64(r.Index),
			Subject:              r.Subject,
			CatalogNbr:           r.CatalogNumber,
			Descr:                r.Description,
			Topic:                r.Topic,
			Instructor:           r.Instructor,
			Units:                r.Units,
			ClassCapacity:        int64(r.ClassCapacity),
			WaitCap:              int64(r.WaitlistCapacity),
			Days:                 r.Days,
			StartTime:            r.StartTime,
			EndTime:              r.EndTime,
			FacilityDescr:        r.Facility,
			AcadCareer:           r.AcademicCareer,
			CampusDescr:          r.Campus,
			InstructionModeDescr: r.InstructionMode,
			FetchedAt:            fetchedAt.Unix(),
		})
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s Store) GetCourses(ctx context.Context, term sis.Term, department string) ([]sis.CourseRecord, error) {
	rows, err := s.qry.GetCourses(ctx, db.GetCoursesParams{
		Term:       term.Code(),
		Department: department,
	})
	if err != nil {
		return nil, err
	}

	records := make([]sis.CourseRecord, len(rows))
	for i, r := range rows {
		records[i] = sis.CourseRecord{
			Index:            int(r.Idx),
			Subject:          r.Subject,
			CatalogNumber:    r.CatalogNbr,
			Description:      r.Descr,
			Topic:            r.Topic,
			Instructor:       r.Instructor,
			Units:            r.Units,
			ClassCapacity:    int(r.ClassCapacity),
			WaitlistCapacity: int(r.WaitCap),
			Days:             r.Days,
			StartTime:        r.StartTime,
			EndTime:          r.EndTime,
			Facility:         r.FacilityDescr,
			AcademicCareer:   r.AcadCareer,
			Campus:           r.CampusDescr,
			InstructionMode:  r.InstructionModeDescr,
		}
	}
	return records, nil
}
