package tap

import (
	"encoding/json"
	"io"
	"time"
)

// Emitter writes Singer protocol messages as JSON lines: a SCHEMA per
// stream, a RECORD per row, STATE checkpoints in between.
type Emitter struct {
	enc *json.Encoder
}

func NewEmitter(out io.Writer) *Emitter {
	return &Emitter{enc: json.NewEncoder(out)}
}

type schemaMessage struct {
	Type          string                 `json:"type"`
	Stream        string                 `json:"stream"`
	Schema        map[string]interface{} `json:"schema"`
	KeyProperties []string               `json:"key_properties"`
}

type recordMessage struct {
	Type          string                 `json:"type"`
	Stream        string                 `json:"stream"`
	Record        map[string]interface{} `json:"record"`
	TimeExtracted string                 `json:"time_extracted"`
}

type stateMessage struct {
	Type  string `json:"type"`
	Value *State `json:"value"`
}

func (e *Emitter) Schema(stream string, schema map[string]interface{}, keyProperties []string) error {
	if keyProperties == nil {
		keyProperties = []string{}
	}
	return e.enc.Encode(schemaMessage{
		Type:          "SCHEMA",
		Stream:        stream,
		Schema:        schema,
		KeyProperties: keyProperties,
	})
}

func (e *Emitter) Record(stream string, record map[string]interface{}) error {
	return e.enc.Encode(recordMessage{
		Type:          "RECORD",
		Stream:        stream,
		Record:        record,
		TimeExtracted: time.Now().UTC().Format(time.RFC3339),
	})
}

func (e *Emitter) State(s *State) error {
	return e.enc.Encode(stateMessage{
		Type:  "STATE",
		Value: s,
	})
}
