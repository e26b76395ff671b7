package sink

import (
	"strings"
	"testing"
)

func TestRenderHTML(t *testing.T) {
	out := string(RenderHTML(testResult(t)))

	checks := []string{
		"<th>Time</th><th>Monday</th><th>Tuesday</th><th>Wednesday</th><th>Thursday</th><th>Friday</th>",
		`<td rowspan="4" style="background-color: #add8e6">French</td>`,
		`<td colspan="5" rowspan="1" style="background-color: silver">Recess</td>`,
		`<td class="time">9:00 AM - 9:30 AM</td>`,
		`<td class="time">08:15 AM</td>`,
		`<td rowspan="2" style="background-color: white">Art &amp; Craft</td>`,
		"<th>Block</th><th>Total Minutes</th>",
		"<tr><td>French</td><td>60</td></tr>",
		"<tr><td>Recess</td><td>30</td></tr>",
	}
	for _, want := range checks {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "<html>") {
		t.Error("fragment should not contain <html>")
	}
}

func TestRenderHTMLRowCells(t *testing.T) {
	out := string(RenderHTML(testResult(t), WithHTMLSummary(false)))

	// 08:15: Monday continued, Wednesday starts, three empty days.
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "08:15 AM") {
			continue
		}
		if n := strings.Count(line, "<td"); n != 5 {
			t.Errorf("08:15 row has %d cells, want 5 (time + Wednesday + 3 empty): %s", n, line)
		}
	}
	if strings.Contains(out, "Total Minutes") {
		t.Error("summary should be omitted")
	}
}

func TestRenderHTMLDocument(t *testing.T) {
	out := string(RenderHTML(testResult(t), WithHTMLDocument(), WithHTMLTitle("Grade <3>")))
	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Errorf("document should start with doctype, got %.40q", out)
	}
	if !strings.Contains(out, "<title>Grade &lt;3&gt;</title>") {
		t.Error("title not escaped into <title>")
	}
	if !strings.Contains(out, "<caption>Grade &lt;3&gt;</caption>") {
		t.Error("caption missing")
	}
	if !strings.HasSuffix(out, "</html>\n") {
		t.Error("document not closed")
	}
}
