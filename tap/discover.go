package tap

import (
	"encoding/json"
	"io"
)

type CatalogEntry struct {
	Stream        string                 `json:"stream"`
	TapStreamId   string                 `json:"tap_stream_id"`
	Schema        map[string]interface{} `json:"schema"`
	KeyProperties []string               `json:"key_properties"`
}

type Catalog struct {
	Streams []CatalogEntry `json:"streams"`
}

// Discover returns the catalog of streams this connector offers.
func Discover(config *Config) *Catalog {
	stream := NewCSVStream(nil, config, NewState(), nil)

	return &Catalog{
		Streams: []CatalogEntry{
			{
				Stream:        CSVStreamName,
				TapStreamId:   CSVStreamName,
				Schema:        stream.Schema(),
				KeyProperties: stream.KeyProperties(),
			},
		},
	}
}

func (c *Catalog) WriteTo(out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
