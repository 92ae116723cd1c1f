package tracelog

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"
)

func sampleLog() *Log {
	ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	l := NewLog()
	l.Append(Record{RunID: "run-1", Iteration: 0, Ant: 0, Reached: false, Hamming: 3, Path: []string{"add", "itoa"}, Timestamp: ts})
	l.Append(Record{RunID: "run-1", Iteration: 0, Ant: 1, Reached: true, Hamming: 0, Path: []string{"add", "itoa", "log"}, Timestamp: ts.Add(time.Millisecond)})
	l.Append(Record{RunID: "run-1", Iteration: 1, Ant: 0, Reached: true, Hamming: 0, Path: []string{"add", "log"}, Timestamp: ts.Add(2 * time.Millisecond)})
	l.Append(Record{RunID: "run-1", Iteration: 1, Ant: 1, Reached: false, Hamming: 5, Path: nil, Timestamp: ts.Add(3 * time.Millisecond)})
	return l
}

func TestCSVRoundTrip(t *testing.T) {
	log := sampleLog()

	var buf bytes.Buffer
	if err := log.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	parsed, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(parsed.Records) != len(log.Records) {
		t.Fatalf("Expected %d records, got %d", len(log.Records), len(parsed.Records))
	}
	for i, want := range log.Records {
		got := parsed.Records[i]
		if got.RunID != want.RunID || got.Iteration != want.Iteration || got.Ant != want.Ant ||
			got.Reached != want.Reached || got.Hamming != want.Hamming {
			t.Errorf("Record %d mismatch: %+v vs %+v", i, got, want)
		}
		if len(got.Path) != len(want.Path) {
			t.Errorf("Record %d path mismatch: %v vs %v", i, got.Path, want.Path)
		}
		if !got.Timestamp.Equal(want.Timestamp) {
			t.Errorf("Record %d timestamp mismatch: %v vs %v", i, got.Timestamp, want.Timestamp)
		}
	}
}

func TestCSVRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"wrong header", "a,b,c\n"},
		{"bad iteration", "run_id,iteration,ant,reached,hamming,path,timestamp\nr,x,0,true,0,,2026-03-14T09:26:53Z\n"},
		{"bad reached", "run_id,iteration,ant,reached,hamming,path,timestamp\nr,0,0,maybe,0,,2026-03-14T09:26:53Z\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ReadCSV(bytes.NewReader([]byte(tc.data))); err == nil {
				t.Error("Expected parse error")
			}
		})
	}
}

func TestJSONLRoundTripFiles(t *testing.T) {
	log := sampleLog()
	path := filepath.Join(t.TempDir(), "trace.jsonl")

	if err := log.SaveJSONL(path); err != nil {
		t.Fatalf("SaveJSONL: %v", err)
	}
	parsed, err := LoadJSONL(path)
	if err != nil {
		t.Fatalf("LoadJSONL: %v", err)
	}
	if len(parsed.Records) != len(log.Records) {
		t.Fatalf("Expected %d records, got %d", len(log.Records), len(parsed.Records))
	}
	if parsed.Records[2].Path[1] != "log" {
		t.Errorf("Path not preserved: %v", parsed.Records[2].Path)
	}
}

func TestBestAndSummary(t *testing.T) {
	log := sampleLog()

	best := log.Best()
	if best == nil {
		t.Fatal("Expected a best record")
	}
	// hamming 0 tie broken by shorter path.
	if best.Iteration != 1 || best.Ant != 0 {
		t.Errorf("Expected iteration 1 ant 0 as best, got iteration %d ant %d", best.Iteration, best.Ant)
	}

	s := log.Summarize()
	if s.Rollouts != 4 || s.Reached != 2 || s.Iterations != 2 {
		t.Errorf("Unexpected summary: %+v", s)
	}
	if s.BestHamming != 0 || s.BestLength != 2 {
		t.Errorf("Unexpected best stats: %+v", s)
	}

	perIter := log.BestPerIteration()
	if len(perIter) != 2 {
		t.Fatalf("Expected 2 iteration bests, got %d", len(perIter))
	}
	if perIter[0].Hamming != 0 || len(perIter[0].Path) != 3 {
		t.Errorf("Iteration 0 best wrong: %+v", perIter[0])
	}
}

func TestEmptyLogBest(t *testing.T) {
	l := NewLog()
	if l.Best() != nil {
		t.Error("Empty log should have no best record")
	}
	s := l.Summarize()
	if s.BestHamming != -1 {
		t.Errorf("Expected sentinel best hamming -1, got %d", s.BestHamming)
	}
}

func TestCollectorCopiesPath(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	c := NewCollector("run-x")
	c.Now = func() time.Time { return ts }

	path := []string{"add"}
	c.Rollout(0, 0, path, 1, false)
	path[0] = "mutated"

	rec := c.Log.Records[0]
	if rec.Path[0] != "add" {
		t.Error("Collector should copy the path slice")
	}
	if rec.RunID != "run-x" || !rec.Timestamp.Equal(ts) {
		t.Errorf("Unexpected record: %+v", rec)
	}
}
