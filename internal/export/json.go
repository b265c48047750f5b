package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/powertrain/internal/dynamo"
	"github.com/san-kum/powertrain/internal/metrics"
)

type Document struct {
	Params  dynamo.Params    `json:"params"`
	Config  dynamo.RunConfig `json:"config"`
	Summary metrics.Summary  `json:"summary"`
	Columns []string         `json:"columns"`
	Rows    []dynamo.Row     `json:"rows"`
}

func NewDocument(t *dynamo.Table) Document {
	return Document{
		Params:  t.Params,
		Config:  t.Config,
		Summary: metrics.Summarize(t),
		Columns: t.Columns(true),
		Rows:    t.Rows,
	}
}

func WriteJSON(w io.Writer, t *dynamo.Table) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(t))
}
