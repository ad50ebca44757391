package spritesheet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"
)

// ParseFile reads and parses an atlas description from disk.
// The returned sheet's Image is resolved relative to the JSON file.
func ParseFile(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sprite sheet %s: %w", path, err)
	}

	sheet, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sprite sheet %s: %w", path, err)
	}
	sheet.Image = filepath.Join(filepath.Dir(path), sheet.Image)
	return sheet, nil
}

// Parse parses an atlas description.
//
// Document order of "frames" and "animations" is preserved: the first
// animation in the file is the default one, and sheets without animations
// play their frames in the order they are listed.
func Parse(data []byte) (*Sheet, error) {
	var root struct {
		Frames     json.RawMessage `json:"frames"`
		Animations json.RawMessage `json:"animations"`
		Meta       jsonMeta        `json:"meta"`
	}
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Meta.Image == "" {
		return nil, fmt.Errorf("meta.image is missing")
	}
	if len(root.Frames) == 0 {
		return nil, fmt.Errorf("frames is missing")
	}

	sheet := &Sheet{
		Image:      root.Meta.Image,
		Size:       image.Pt(root.Meta.Size.W, root.Meta.Size.H),
		frameIndex: make(map[string]int),
	}

	err := walkObject(root.Frames, func(name string, raw json.RawMessage) error {
		var jf jsonFrame
		if err := json.Unmarshal(raw, &jf); err != nil {
			return fmt.Errorf("frame %q: %w", name, err)
		}
		frame, err := convertFrame(name, jf)
		if err != nil {
			return err
		}
		if _, dup := sheet.frameIndex[name]; dup {
			return fmt.Errorf("duplicate frame %q", name)
		}
		sheet.frameIndex[name] = len(sheet.Frames)
		sheet.Frames = append(sheet.Frames, frame)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(sheet.Frames) == 0 {
		return nil, fmt.Errorf("sheet has no frames")
	}

	if len(root.Animations) > 0 && !bytes.Equal(bytes.TrimSpace(root.Animations), []byte("null")) {
		err = walkObject(root.Animations, func(name string, raw json.RawMessage) error {
			var names []string
			if err := json.Unmarshal(raw, &names); err != nil {
				return fmt.Errorf("animation %q: %w", name, err)
			}
			for _, frameName := range names {
				if _, ok := sheet.frameIndex[frameName]; !ok {
					return fmt.Errorf("animation %q references unknown frame %q", name, frameName)
				}
			}
			sheet.Animations = append(sheet.Animations, Animation{Name: name, Frames: names})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return sheet, nil
}

func convertFrame(name string, jf jsonFrame) (Frame, error) {
	r := jf.Frame
	if r.W <= 0 || r.H <= 0 {
		return Frame{}, fmt.Errorf("frame %q has empty size %dx%d", name, r.W, r.H)
	}

	// TexturePacker 对旋转帧仍写出未旋转的宽高
	w, h := r.W, r.H
	if jf.Rotated {
		w, h = h, w
	}

	f := Frame{
		Name:       name,
		Rect:       image.Rect(r.X, r.Y, r.X+w, r.Y+h),
		Rotated:    jf.Rotated,
		Trimmed:    jf.Trimmed,
		SourceSize: image.Pt(r.W, r.H),
	}
	if jf.SpriteSourceSize != nil {
		f.Offset = image.Pt(jf.SpriteSourceSize.X, jf.SpriteSourceSize.Y)
	}
	if jf.SourceSize != nil && jf.SourceSize.W > 0 && jf.SourceSize.H > 0 {
		f.SourceSize = image.Pt(jf.SourceSize.W, jf.SourceSize.H)
	}
	return f, nil
}

// walkObject calls fn for each member of a JSON object in document order.
func walkObject(data json.RawMessage, fn func(key string, value json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("value of %q: %w", key, err)
		}
		if err := fn(key, value); err != nil {
			return err
		}
	}

	_, err = dec.Token()
	return err
}

// Frame returns the frame with the given name.
func (s *Sheet) Frame(name string) (Frame, bool) {
	i, ok := s.frameIndex[name]
	if !ok {
		return Frame{}, false
	}
	return s.Frames[i], true
}

// Animation returns the frames of the named animation.
func (s *Sheet) Animation(name string) ([]Frame, bool) {
	for _, anim := range s.Animations {
		if anim.Name == name {
			return s.resolve(anim.Frames), true
		}
	}
	return nil, false
}

// DefaultAnimation returns the frames of the first animation.
// A sheet without animations has nothing to play and returns nil.
func (s *Sheet) DefaultAnimation() []Frame {
	if len(s.Animations) == 0 {
		return nil
	}
	return s.resolve(s.Animations[0].Frames)
}

func (s *Sheet) resolve(names []string) []Frame {
	frames := make([]Frame, 0, len(names))
	for _, name := range names {
		frames = append(frames, s.Frames[s.frameIndex[name]])
	}
	return frames
}
