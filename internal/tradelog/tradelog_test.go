package tradelog

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestAppendDecision(t *testing.T) {
	t.Setenv("FOREX_LOG_DIR", t.TempDir())

	entries := []DecisionEntry{
		{Pair: "EURUSD", Action: "BUY", Rate: 1.1020, Sentiment: 3, Reason: "bullish momentum"},
		{Pair: "USDJPY", Action: "HOLD", Rate: 149.80, Sentiment: 0, Reason: "mixed signals"},
	}
	for _, e := range entries {
		if err := AppendDecision(e); err != nil {
			t.Fatal(err)
		}
	}

	f, err := os.Open(decisionsFilepath(time.Now()))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var got []DecisionEntry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e DecisionEntry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("line not valid json: %v", err)
		}
		got = append(got, e)
	}
	if len(got) != 2 {
		t.Fatalf("got %d journal lines, want 2", len(got))
	}
	if got[0].Pair != "EURUSD" || got[0].Action != "BUY" {
		t.Errorf("first line = %+v", got[0])
	}
	if got[1].Time == "" {
		t.Error("entry time not stamped")
	}
}

func TestCompressOlder(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FOREX_LOG_DIR", dir)

	old := filepath.Join(dir, "decisions", "2026-01-01.txt")
	if err := os.MkdirAll(filepath.Dir(old), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(old, []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	stale := time.Now().AddDate(0, 0, -10)
	if err := os.Chtimes(old, stale, stale); err != nil {
		t.Fatal(err)
	}

	fresh := filepath.Join(dir, "decisions", "today.txt")
	if err := os.WriteFile(fresh, []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CompressOlder(7); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(old + ".gz"); err != nil {
		t.Errorf("stale journal not compressed: %v", err)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("stale journal original not removed")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Errorf("fresh journal must be untouched: %v", err)
	}
}

func TestCompressOlderDisabled(t *testing.T) {
	t.Setenv("FOREX_LOG_DIR", t.TempDir())
	if err := CompressOlder(0); err != nil {
		t.Fatal(err)
	}
}
