package sis

import (
	"context"
	"fmt"

	"sisuva-scraper/internal/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

const (
	report_service_list_departments = "service.list-departments"
	report_service_list_courses     = "service.list-courses"
)

var tracer = otel.Tracer("sisuva-scraper/internal/sis")
var meter = otel.Meter("sisuva-scraper/internal/sis")
var recordCounter, _ = meter.Int64Counter(
	"sis.records_written",
	metric.WithDescription("the amount of departments or course records written to disk"),
)

type Options struct {
	Endpoints Endpoints
	// OutputDir is the directory output files are written to, the working directory if empty.
	OutputDir string
}

type Service struct {
	client    Client
	outputDir string
	tel       telemetry.API
}

func NewService(opts Options, tel telemetry.API) Service {
	if opts.Endpoints.Departments == "" {
		opts.Endpoints.Departments = defaultDepartmentsEndpoint
	}
	if opts.Endpoints.Courses == "" {
		opts.Endpoints.Courses = defaultCoursesEndpoint
	}
	return Service{
		client:    NewClient(opts.Endpoints, telemetry.NewScopedAPI("client", tel)),
		outputDir: opts.OutputDir,
		tel:       tel,
	}
}

// DepartmentsPath is the path ListDepartments writes to.
func (s Service) DepartmentsPath() string {
	return outputPath(s.outputDir, DepartmentsFileName)
}

// CoursesPath is the path ListCourses writes to for the given term and department.
func (s Service) CoursesPath(department string, term Term) string {
	return outputPath(s.outputDir, CoursesFileName(department, term))
}

// ListDepartments fetches the mnemonics of every department offering classes in the given
// term and writes them to DepartmentsFileName.
func (s Service) ListDepartments(ctx context.Context, year int, semester string) (mnemonics []string, err error) {
	term, err := Validate(year, semester)
	if err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "list-departments")
	defer span.End()
	span.SetAttributes(attribute.String("term", term.Code()))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	raw, err := s.client.FetchDepartments(ctx, term)
	if err != nil {
		return nil, err
	}
	mnemonics, err = ProjectDepartments(raw, s.tel)
	if err != nil {
		return nil, err
	}

	path := s.DepartmentsPath()
	err = WriteJSON(path, mnemonics)
	if err != nil {
		s.tel.ReportBroken(report_service_list_departments, err)
		return nil, err
	}
	recordCounter.Add(ctx, int64(len(mnemonics)), metric.WithAttributes(attribute.String("kind", "departments")))
	s.tel.ReportDebug("wrote departments", path, len(mnemonics))

	return mnemonics, nil
}

// ListCourses fetches the first page of sections of a department in the given term and writes
// the ones numbered up to MaxCatalogNumber to CoursesFileName.
func (s Service) ListCourses(ctx context.Context, year int, semester, department string) (records []CourseRecord, err error) {
	term, err := Validate(year, semester)
	if err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "list-courses")
	defer span.End()
	span.SetAttributes(
		attribute.String("term", term.Code()),
		attribute.String("department", department),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	raw, err := s.client.FetchCourses(ctx, term, department)
	if err != nil {
		return nil, err
	}
	records, err = ProjectCourses(raw, s.tel)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", department, term, err)
	}

	path := s.CoursesPath(department, term)
	err = WriteJSON(path, records)
	if err != nil {
		s.tel.ReportBroken(report_service_list_courses, err)
		return nil, err
	}
	recordCounter.Add(ctx, int64(len(records)), metric.WithAttributes(attribute.String("kind", "courses")))
	s.tel.ReportDebug("wrote courses", path, len(records))

	return records, nil
}
