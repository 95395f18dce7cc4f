package importer

import (
	"os"
	"path/filepath"
	"testing"
)

func writeQuizFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRunEmptyDirectory(t *testing.T) {
	report, err := New(nil).Run(t.TempDir(), false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.FilesTotal != 0 || report.FilesImported != 0 || report.FilesFailed != 0 {
		t.Errorf("report = %+v, want all zero", report)
	}
}

func TestRunRejectsMissingDirectory(t *testing.T) {
	if _, err := New(nil).Run("/no/such/dir", false); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

// A file that fails import must not be re-reported by the verification
// pass as a missing test.
func TestRunFailedFilesNotReportedAsDiscrepancies(t *testing.T) {
	dir := t.TempDir()
	writeQuizFile(t, dir, "broken.json", `{not json at all`)
	writeQuizFile(t, dir, "noscope.json", `{
		"category": "Science",
		"questions": [{
			"questionText": "Which organelle produces ATP?",
			"type": "single-choice",
			"options": ["Mitochondrion", "Nucleus"],
			"correctAnswers": [0]
		}]
	}`)

	report, err := New(nil).Run(dir, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.FilesTotal != 2 || report.FilesFailed != 2 || report.FilesImported != 0 {
		t.Fatalf("report = %+v, want 2 total, 2 failed", report)
	}
	if len(report.Discrepancies) != 0 {
		t.Errorf("failed files double-counted as discrepancies: %v", report.Discrepancies)
	}
}
