package frameshow

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Document is the persisted form of a scene:
//
//	{num_frames, frame, objs: [{type, properties}], cam: {properties}, pen: {drawings}}
//
// Selection and in-flight transition state are not part of it.
type Document struct {
	NumFrames int            `json:"num_frames"`
	Frame     int            `json:"frame"`
	Objs      []ObjectRecord `json:"objs"`
	Cam       *CameraRecord  `json:"cam,omitempty"`
	Pen       *Pen           `json:"pen,omitempty"`
}

// ObjectRecord is the persisted form of one object.
type ObjectRecord struct {
	Type       string         `json:"type"`
	Properties *PropertyStore `json:"properties"`
}

// CameraRecord is the persisted form of the camera.
type CameraRecord struct {
	Properties *PropertyStore `json:"properties"`
}

// MarshalJSON writes the object as its persisted record.
func (o *Object) MarshalJSON() ([]byte, error) {
	return json.Marshal(ObjectRecord{Type: o.Kind.String(), Properties: o.Properties})
}

// decodeDocument parses and validates persisted scene data. Every error is a
// *SerializationError.
func decodeDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &SerializationError{Op: "decode scene", Err: err}
	}
	if doc.NumFrames < 0 {
		return nil, &SerializationError{Op: "decode scene", Err: fmt.Errorf("num_frames %d", doc.NumFrames)}
	}
	if doc.NumFrames > 0 && (doc.Frame < 0 || doc.Frame > doc.NumFrames) {
		return nil, &SerializationError{Op: "decode scene", Err: fmt.Errorf("%w: frame %d of %d", ErrFrameRange, doc.Frame, doc.NumFrames)}
	}
	if err := validateRecords(doc.Objs); err != nil {
		return nil, &SerializationError{Op: "decode scene", Err: err}
	}
	if doc.Cam != nil && doc.Cam.Properties != nil {
		if err := doc.Cam.Properties.Validate(); err != nil {
			return nil, &SerializationError{Op: "decode camera", Err: err}
		}
	}
	return &doc, nil
}

func validateRecords(recs []ObjectRecord) error {
	for i, rec := range recs {
		if _, ok := ParseObjectKind(rec.Type); !ok {
			return fmt.Errorf("object %d: unknown type %q", i, rec.Type)
		}
		if rec.Properties == nil || rec.Properties.Len() == 0 {
			return fmt.Errorf("object %d: %w", i, errors.New("no properties"))
		}
	}
	return nil
}

// objectsFromRecords rebuilds objects from validated records. With
// keepAnimation the stores are used as is; otherwise only the frame 1
// keyframe is kept, at frame 1, and the objects come back selected.
func objectsFromRecords(recs []ObjectRecord, keepAnimation bool) ([]*Object, error) {
	objs := make([]*Object, 0, len(recs))
	for i, rec := range recs {
		kind, _ := ParseObjectKind(rec.Type)
		if keepAnimation {
			if err := rec.Properties.Validate(); err != nil {
				return nil, fmt.Errorf("object %d: %w", i, err)
			}
			objs = append(objs, newObjectOfKind(kind, rec.Properties))
			continue
		}
		s, err := rec.Properties.Get(1)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		o := newObjectOfKind(kind, NewPropertyStore(1, s))
		o.Select()
		objs = append(objs, o)
	}
	return objs, nil
}
