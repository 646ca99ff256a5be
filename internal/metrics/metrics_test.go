package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func getCounterVecValue(cv *prometheus.CounterVec, labels ...string) float64 {
	c, err := cv.GetMetricWithLabelValues(labels...)
	if err != nil {
		return 0
	}
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

func TestMetrics_SubtitleDownloadsTotal(t *testing.T) {
	before := getCounterVecValue(SubtitleDownloadsTotal, "success")
	SubtitleDownloadsTotal.WithLabelValues("success").Inc()
	after := getCounterVecValue(SubtitleDownloadsTotal, "success")

	if after != before+1 {
		t.Errorf("Expected success counter to increment by 1, got diff %.0f", after-before)
	}
}

func TestMetrics_PageFetchesTotal(t *testing.T) {
	before := getCounterVecValue(PageFetchesTotal, "home", "200")
	PageFetchesTotal.WithLabelValues("home", "200").Inc()
	after := getCounterVecValue(PageFetchesTotal, "home", "200")

	if after != before+1 {
		t.Errorf("Expected home fetch counter to increment by 1, got diff %.0f", after-before)
	}
}

func TestMetrics_FileOutcomesTotal(t *testing.T) {
	before := testutil.ToFloat64(FileOutcomesTotal.WithLabelValues("not-found"))
	FileOutcomesTotal.WithLabelValues("not-found").Inc()
	FileOutcomesTotal.WithLabelValues("not-found").Inc()

	if got := testutil.ToFloat64(FileOutcomesTotal.WithLabelValues("not-found")); got != before+2 {
		t.Errorf("Expected not-found outcomes to grow by 2, got %.0f -> %.0f", before, got)
	}
}

func TestWriteTextfileFrom(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_textfile_total", Help: "Test counter."})
	reg.MustRegister(counter)
	counter.Add(3)

	path := filepath.Join(t.TempDir(), "addic7ed.prom")
	if err := WriteTextfileFrom(reg, path); err != nil {
		t.Fatalf("WriteTextfileFrom failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(content), "test_textfile_total 3") {
		t.Errorf("Expected counter sample in textfile, got:\n%s", content)
	}
}

func TestWriteTextfileFrom_InvalidPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "addic7ed.prom")
	if err := WriteTextfileFrom(prometheus.NewRegistry(), path); err == nil {
		t.Fatal("Expected error for unwritable path")
	}
}
