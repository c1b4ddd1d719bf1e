package persist

import (
	"encoding/json"

	"github.com/xeipuuv/gojsonschema"

	"github.com/tbourn/moreply-backend/internal/domain"
)

// recordSchemaJSON describes one persisted template. Records that do not
// match are dropped on load instead of failing the whole collection.
const recordSchemaJSON = `{
  "type": "object",
  "required": ["id", "name", "platform"],
  "properties": {
    "id":              {"type": "string", "minLength": 1},
    "name":            {"type": "string", "minLength": 1},
    "channel":         {"enum": ["Review", "Social", "", null]},
    "platform":        {"enum": ["Google", "Yelp", "Instagram", "Facebook", "X", "TikTok"]},
    "tone":            {"enum": ["", "Friendly", "Professional", "Playful", "Apologetic", "Custom", null]},
    "emojiPreference": {"type": ["string", "null"]},
    "exampleText":     {"type": ["string", "null"]},
    "replyText":       {"type": ["string", "null"]},
    "isActive":        {"type": ["boolean", "null"]},
    "createdAt":       {"type": ["string", "null"]}
  }
}`

var recordSchema = mustSchema(recordSchemaJSON)

func mustSchema(s string) *gojsonschema.Schema {
	sch, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(err)
	}
	return sch
}

// Encode serializes the collection as a compact JSON array. A nil slice
// encodes as "[]".
func Encode(templates []domain.Template) ([]byte, error) {
	if templates == nil {
		templates = []domain.Template{}
	}
	return json.Marshal(templates)
}

// Decode parses a stored collection leniently. The outer value must be a JSON
// array (otherwise err is non-nil and the caller treats the slot as empty);
// individual elements that fail schema validation or decoding are skipped and
// counted in dropped. When two records share an id, the first one wins.
func Decode(data []byte) (templates []domain.Template, dropped int, err error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, 0, err
	}

	templates = make([]domain.Template, 0, len(raws))
	seen := make(map[string]struct{}, len(raws))
	for _, raw := range raws {
		res, verr := recordSchema.Validate(gojsonschema.NewBytesLoader(raw))
		if verr != nil || !res.Valid() {
			dropped++
			continue
		}
		var t domain.Template
		if err := json.Unmarshal(raw, &t); err != nil {
			dropped++
			continue
		}
		if _, dup := seen[t.ID]; dup {
			dropped++
			continue
		}
		seen[t.ID] = struct{}{}
		templates = append(templates, t)
	}
	return templates, dropped, nil
}
