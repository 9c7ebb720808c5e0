package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveIntent(t *testing.T) {
	c := IntentsDispatched.WithLabelValues("test-bot", "help")
	before := testutil.ToFloat64(c)

	ObserveIntent("test-bot", "help")
	ObserveIntent("test-bot", "help")

	assert.Equal(t, before+2, testutil.ToFloat64(c))
}

func TestObserveBuild_Status(t *testing.T) {
	ok := DashboardBuilds.WithLabelValues("ok")
	failed := DashboardBuilds.WithLabelValues("error")
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	ObserveBuild(time.Now(), nil)
	ObserveBuild(time.Now(), errors.New("boom"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ok))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(failed))
}
