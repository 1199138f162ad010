package telemetry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopedAPI(t *testing.T) {
	tel := SetupForTesting(t, "test:telemetry")
	scoped := NewScopedAPI("sis", tel)

	scoped.ReportBroken("client.fetch", "boom")
	scoped.ReportWarning("projector.courses", 3)
	scoped.ReportDebug("parsed entry", 1)
	scoped.ReportCount("projector.courses", 12)

	require.Len(t, tel.Reports(""), 4)

	broken := tel.Reports("broken")
	require.Len(t, broken, 1)
	require.Equal(t, "sis: client.fetch", broken[0].ID)
	require.Equal(t, []any{"boom"}, broken[0].Params)

	counts := tel.Reports("count")
	require.Len(t, counts, 1)
	require.Equal(t, "sis: projector.courses", counts[0].ID)
	require.Equal(t, int64(12), counts[0].Count)

	nested := NewScopedAPI("cli", scoped)
	nested.ReportWarning("courses")
	warnings := tel.Reports("warning")
	require.Len(t, warnings, 2)
	require.Equal(t, "sis: cli: courses", warnings[1].ID)
}
