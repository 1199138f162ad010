package telemetry

import (
	"sync"
	"testing"
)

// Report is a single call made against a TestAPI.
type Report struct {
	Kind   string
	ID     string
	Params []any
	Count  int64
}

// TestAPI records every report so tests can assert on them, it also forwards
// everything to SlogAPI so `go test -v` output stays readable.
type TestAPI struct {
	lock    *sync.Mutex
	reports *[]Report
	inner   SlogAPI
}

func NewTestAPI() TestAPI {
	return TestAPI{
		lock:    &sync.Mutex{},
		reports: &[]Report{},
	}
}

func (t TestAPI) record(r Report) {
	t.lock.Lock()
	defer t.lock.Unlock()
	*t.reports = append(*t.reports, r)
}

func (t TestAPI) ReportBroken(id string, params ...any) {
	t.record(Report{Kind: "broken", ID: id, Params: params})
	t.inner.ReportBroken(id, params...)
}

func (t TestAPI) ReportWarning(id string, params ...any) {
	t.record(Report{Kind: "warning", ID: id, Params: params})
	t.inner.ReportWarning(id, params...)
}

func (t TestAPI) ReportDebug(msg string, params ...any) {
	t.record(Report{Kind: "debug", ID: msg, Params: params})
	t.inner.ReportDebug(msg, params...)
}

func (t TestAPI) ReportCount(id string, count int64) {
	t.record(Report{Kind: "count", ID: id, Count: count})
	t.inner.ReportCount(id, count)
}

// Reports returns a copy of the reports of the given kind, an empty kind returns all of them.
func (t TestAPI) Reports(kind string) []Report {
	t.lock.Lock()
	defer t.lock.Unlock()

	var out []Report
	for _, r := range *t.reports {
		if kind == "" || r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

var setupTestEnvironments = map[string]bool{}

// SetupForTesting sets up logging in a testing environment, ensuring that it isn't
// set up more than once per service name.
func SetupForTesting(t testing.TB, serviceName string) TestAPI {
	t.Helper()
	if !setupTestEnvironments[serviceName] {
		InitSlog(true)
		setupTestEnvironments[serviceName] = true
	}
	return NewTestAPI()
}
