package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"declutter/internal/history"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/declutter-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("declutter-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML renders the history record in Netscape bookmark format.
// Shortcuts and organized paths become file:// links in two folders, so the
// file opens in any browser and can be re-imported.
func ExportHTML(rec *history.Record) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Declutter History</TITLE>\n")
	b.WriteString("<H1>Declutter History</H1>\n")
	b.WriteString("<DL><p>\n")

	b.WriteString("    <DT><H3>Shortcuts</H3>\n")
	b.WriteString("    <DL><p>\n")
	for _, s := range rec.Shortcuts {
		fmt.Fprintf(&b,
			"        <DT><A HREF=\"file://%s\" SHORTCUT_KEY=\"%s\">%s: %s</A>\n",
			html.EscapeString(s.Destination),
			html.EscapeString(s.Key),
			html.EscapeString(s.Key),
			html.EscapeString(s.Destination),
		)
	}
	b.WriteString("    </DL><p>\n")

	b.WriteString("    <DT><H3>Organized</H3>\n")
	b.WriteString("    <DL><p>\n")
	for _, p := range rec.OrganizedPaths() {
		fmt.Fprintf(&b,
			"        <DT><A HREF=\"file://%s\">%s</A>\n",
			html.EscapeString(p),
			html.EscapeString(p),
		)
	}
	b.WriteString("    </DL><p>\n")

	b.WriteString("</DL><p>\n")

	return b.String()
}
