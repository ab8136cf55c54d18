package importer_test

import (
	"strings"
	"testing"

	"declutter/internal/exporter"
	"declutter/internal/history"
	"declutter/internal/importer"
	"declutter/internal/model"
)

func TestParseHistoryHTML_RoundTrip(t *testing.T) {
	rec := history.NewRecord()
	rec.SetShortcut(model.Shortcut{Key: "d", Destination: "/tmp/downloads"})
	rec.SetShortcut(model.Shortcut{Key: "p", Destination: "/tmp/pictures"})
	if err := rec.MarkOrganized("/tmp/sorted/a.txt"); err != nil {
		t.Fatal(err)
	}

	out := exporter.ExportHTML(rec)

	shortcuts, organized, err := importer.ParseHistoryHTML(strings.NewReader(out))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(shortcuts) != 2 {
		t.Fatalf("expected 2 shortcuts, got %d", len(shortcuts))
	}
	if shortcuts[0].Key != "d" || shortcuts[0].Destination != "/tmp/downloads" {
		t.Errorf("shortcuts[0] = %+v", shortcuts[0])
	}
	if len(organized) != 1 || organized[0] != "/tmp/sorted/a.txt" {
		t.Errorf("organized = %v", organized)
	}
}

func TestParseHistoryHTML_IgnoresNonFileLinks(t *testing.T) {
	input := `<html><body>
		<a href="https://example.com">web link</a>
		<a href="file:///tmp/kept.txt">/tmp/kept.txt</a>
	</body></html>`

	shortcuts, organized, err := importer.ParseHistoryHTML(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(shortcuts) != 0 {
		t.Errorf("expected no shortcuts, got %v", shortcuts)
	}
	if len(organized) != 1 || organized[0] != "/tmp/kept.txt" {
		t.Errorf("organized = %v", organized)
	}
}

func TestParseHistoryHTML_MalformedHTMLIsTolerated(t *testing.T) {
	// html.Parse repairs broken markup rather than failing
	input := `<DT><A HREF="file:///tmp/x" SHORTCUT_KEY="x">x</A><DL>`

	shortcuts, _, err := importer.ParseHistoryHTML(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(shortcuts) != 1 || shortcuts[0].Key != "x" {
		t.Errorf("shortcuts = %v", shortcuts)
	}
}
