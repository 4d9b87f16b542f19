package server

import (
	"html/template"

	"github.com/midimap/tsidump/dcdt"
)

type statusRow struct {
	Control    string
	Label      string
	Confidence string
	Offset     int
}

type statusChannel struct {
	Channel int
	Rows    []statusRow
}

type statusData struct {
	Version      string
	Source       string
	Channels     []statusChannel
	Unidentified []int
	Summary      dcdt.Summary

	Log string

	CSRFField template.HTML
}

func newStatusData(result *dcdt.Result, source, version, log string, csrfField template.HTML) *statusData {
	data := &statusData{
		Version:   version,
		Source:    source,
		Summary:   result.Summary(),
		Log:       log,
		CSRFField: csrfField,
	}

	byChannel := make(map[int][]statusRow)
	for _, m := range result.Mappings {
		if m.Identifier == nil {
			data.Unidentified = append(data.Unidentified, m.Offset)
			continue
		}
		control := m.Identifier.String()
		label := m.Label
		if label == "" {
			label = "-"
		}
		byChannel[m.Identifier.Channel] = append(byChannel[m.Identifier.Channel], statusRow{
			Control:    control,
			Label:      label,
			Confidence: m.Confidence.String(),
			Offset:     m.Offset,
		})
	}

	for channel := 1; channel <= 16; channel++ {
		rows := byChannel[channel]
		if len(rows) == 0 {
			continue
		}
		data.Channels = append(data.Channels, statusChannel{Channel: channel, Rows: rows})
	}

	return data
}

const templateString = `
<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1, shrink-to-fit=no">
  <title>tsidump status</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", "Roboto", "Helvetica Neue", Arial, sans-serif;
      max-width: 900px;
      margin: 0 auto;
      padding: 0 16px;
    }

    h1 {
      font-size: 32px;
    }

    p {
      color: #858585;
    }

    table {
      border-collapse: collapse;
      width: 100%;
      margin-bottom: 24px;
    }

    th, td {
      border: 1px solid lightgray;
      padding: 6px 10px;
      text-align: left;
      font-size: 14px;
    }

    .confirmed {
      color: #01B757;
    }

    .unverified {
      color: #858585;
    }

    .badge {
      display: inline-block;
      padding: 6px 10px;
      border: 1px solid #01B757;
      border-radius: 4px;
      color: #01B757;
    }

    pre {
      background: #f6f6f6;
      border: 1px solid lightgray;
      border-radius: 4px;
      padding: 12px;
      font-size: 11px;
      overflow-x: auto;
    }
  </style>
</head>
<body>
  <h1>tsidump</h1>
  <p><span class="badge">Version {{ .Version }}</span></p>
  <p>Decoded from <b>{{ .Source }}</b> &mdash;
    {{ .Summary.Segments }} segments,
    {{ .Summary.Identified }} identified,
    {{ .Summary.Labeled }} labeled,
    {{ .Summary.Confirmed }} confirmed,
    {{ .Summary.Truncated }} truncated.
    <a href="/status/mappings.json">JSON</a></p>

  {{ range .Channels }}
  <h3>Channel {{ .Channel }}</h3>
  <table>
    <tr><th>Control</th><th>Command label</th><th>Confidence</th><th>Offset</th></tr>
    {{ range .Rows }}
    <tr>
      <td>{{ .Control }}</td>
      <td>{{ .Label }}</td>
      <td class="{{ .Confidence }}">{{ .Confidence }}</td>
      <td>{{ .Offset }}</td>
    </tr>
    {{ end }}
  </table>
  {{ end }}

  {{ if .Unidentified }}
  <h3>Unidentified segments</h3>
  <p>
    {{ range .Unidentified }}offset {{ . }} {{ end }}
  </p>
  {{ end }}

  <h3>Log</h3>
  <form method="POST" action="/status/log.gz">
    {{ .CSRFField }}
    <button type="submit">Download detailed log</button>
  </form>
  <pre>{{ .Log }}</pre>
</body>
</html>
`

var statusTemplate = template.Must(template.New("status").Parse(templateString))
