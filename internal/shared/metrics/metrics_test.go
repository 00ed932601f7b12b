package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-closures/internal/shared/logger"
)

// TestNew_SeparateRegistries verifies two instances can coexist without registration conflicts.
func TestNew_SeparateRegistries(t *testing.T) {
	t.Parallel()

	a := New(logger.NewNop())
	b := New(logger.NewNop())
	require.NotSame(t, a.Registry(), b.Registry())

	a.RecordLessonRun()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.LessonRunCounter()))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.LessonRunCounter()))
}

// TestRecordSection_Status verifies success and failure land on different labels.
func TestRecordSection_Status(t *testing.T) {
	t.Parallel()

	m := New(logger.NewNop())
	m.RecordSection("counter", time.Millisecond, nil)
	m.RecordSection("counter", time.Millisecond, errors.New("boom"))
	m.RecordSection("counter", time.Millisecond, nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SectionCounter("counter", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SectionCounter("counter", "failure")))
}

// TestRecordClosureCall verifies closure calls are counted per name.
func TestRecordClosureCall(t *testing.T) {
	t.Parallel()

	m := New(logger.NewNop())
	m.RecordClosureCall("counter")
	m.RecordClosureCall("counter")
	m.RecordClosureCall("printer")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ClosureCallCounter("counter")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ClosureCallCounter("printer")))
}

// TestHandler_Exposition verifies the handler serves the registered metrics.
func TestHandler_Exposition(t *testing.T) {
	t.Parallel()

	m := New(logger.NewNop())
	m.RecordLessonRun()
	m.RecordUptime(3 * time.Second)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "lesson_runs_total 1")
	assert.Contains(t, rec.Body.String(), "app_uptime_seconds 3")
}
