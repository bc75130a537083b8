package transcript

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mrsingh-rishi/transcript-sheet/types"
)

// Nested field names of one provider result record.
const (
	fieldResults  = "results"
	fieldEmotions = "emotions_result"
	fieldSpeaker  = "speaker_info"
	fieldBackend  = "backend_info"
)

type hypothesis struct {
	Text           string `json:"text"`
	NormalizedText string `json:"normalized_text"`
	Start          string `json:"start"`
	End            string `json:"end"`
}

type emotions struct {
	Positive *float64 `json:"positive"`
	Neutral  *float64 `json:"neutral"`
	Negative *float64 `json:"negative"`
}

type speakerInfo struct {
	SpeakerID             int     `json:"speaker_id"`
	MainSpeakerConfidence float64 `json:"main_speaker_confidence"`
}

// record is one flattened result entry before projection.
type record struct {
	first    hypothesis
	emotions *emotions
	speaker  *speakerInfo
	backend  map[string]any
}

// Shape turns the raw recognition result into table rows. Nested fields may
// be inline JSON or JSON-encoded strings; both go through encoding/json.
func Shape(raw []byte) (types.Table, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, types.Errorf(types.ErrShape, "shape", "result is not a list")
	}

	var items []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, types.NewError(types.ErrShape, "shape", err)
	}

	table := make(types.Table, 0, len(items))
	for i, item := range items {
		rec, err := flatten(item)
		if err != nil {
			return nil, types.NewError(types.ErrShape, fmt.Sprintf("shape record %d", i), err)
		}
		if rec.first.NormalizedText == "" {
			continue
		}
		seg, err := project(rec)
		if err != nil {
			return nil, types.NewError(types.ErrShape, fmt.Sprintf("shape record %d", i), err)
		}
		table = append(table, seg)
	}
	return table, nil
}

func flatten(item map[string]json.RawMessage) (*record, error) {
	if item == nil {
		return nil, fmt.Errorf("record is not an object")
	}

	var results []hypothesis
	ok, err := decodeNested(item[fieldResults], &results)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fieldResults, err)
	}
	if !ok {
		return nil, fmt.Errorf("missing %s", fieldResults)
	}

	rec := &record{}
	if len(results) > 0 {
		rec.first = results[0]
	}

	var emo emotions
	if ok, err := decodeNested(item[fieldEmotions], &emo); err != nil {
		return nil, fmt.Errorf("%s: %w", fieldEmotions, err)
	} else if ok {
		rec.emotions = &emo
	}

	var spk speakerInfo
	if ok, err := decodeNested(item[fieldSpeaker], &spk); err != nil {
		return nil, fmt.Errorf("%s: %w", fieldSpeaker, err)
	} else if ok {
		rec.speaker = &spk
	}

	if _, err := decodeNested(item[fieldBackend], &rec.backend); err != nil {
		return nil, fmt.Errorf("%s: %w", fieldBackend, err)
	}
	return rec, nil
}

// decodeNested reports false for an absent or null field.
func decodeNested(raw json.RawMessage, v any) (bool, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return false, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return false, err
		}
		if s == "" {
			return false, nil
		}
		raw = []byte(s)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, err
	}
	return true, nil
}

func project(rec *record) (types.Segment, error) {
	start, err := ParseSeconds(rec.first.Start)
	if err != nil {
		return types.Segment{}, fmt.Errorf("start: %w", err)
	}
	end, err := ParseSeconds(rec.first.End)
	if err != nil {
		return types.Segment{}, fmt.Errorf("end: %w", err)
	}

	seg := types.Segment{
		Text:  rec.first.NormalizedText,
		Start: FormatTimestamp(start),
		End:   FormatTimestamp(end),
	}
	if e := rec.emotions; e != nil {
		seg.Positive = round2Ptr(e.Positive)
		seg.Neutral = round2Ptr(e.Neutral)
		seg.Negative = round2Ptr(e.Negative)
	}
	return seg, nil
}

func round2Ptr(f *float64) *float64 {
	if f == nil {
		return nil
	}
	r := Round2(*f)
	return &r
}
