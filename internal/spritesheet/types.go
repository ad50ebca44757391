// Package spritesheet parses texture atlas descriptions in the JSON-hash
// format exported by TexturePacker and consumed by PixiJS.
//
// A sheet describes one atlas image, the named frame rectangles inside it,
// and optional named animations (ordered lists of frame names).
package spritesheet

import "image"

// Sheet is a parsed atlas description.
type Sheet struct {
	// Image is the atlas image path relative to the JSON file.
	Image string
	// Size is the declared atlas size (may be zero when meta omits it).
	Size image.Point

	// Frames in document order.
	Frames []Frame
	// Animations in document order.
	Animations []Animation

	frameIndex map[string]int
}

// Frame is a single named region of the atlas.
type Frame struct {
	Name string

	// Rect is the region occupied in the atlas image.
	// For rotated frames the region is SourceRect rotated 90° clockwise,
	// so its width and height are swapped relative to the logical frame.
	Rect image.Rectangle

	// Rotated is true when the frame is stored rotated 90° clockwise.
	Rotated bool

	// Trimmed frames have transparent borders removed; Offset is where the
	// trimmed region sits inside the untrimmed SourceSize canvas.
	Trimmed    bool
	Offset     image.Point
	SourceSize image.Point
}

// Width returns the logical (unrotated, trimmed) width of the frame.
func (f Frame) Width() int {
	if f.Rotated {
		return f.Rect.Dy()
	}
	return f.Rect.Dx()
}

// Height returns the logical (unrotated, trimmed) height of the frame.
func (f Frame) Height() int {
	if f.Rotated {
		return f.Rect.Dx()
	}
	return f.Rect.Dy()
}

// Animation is a named, ordered list of frame names.
type Animation struct {
	Name   string
	Frames []string
}

// jsonRect matches {"x":0,"y":0,"w":10,"h":10}.
type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// jsonSize matches {"w":10,"h":10}.
type jsonSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame            jsonRect  `json:"frame"`
	Rotated          bool      `json:"rotated"`
	Trimmed          bool      `json:"trimmed"`
	SpriteSourceSize *jsonRect `json:"spriteSourceSize"`
	SourceSize       *jsonSize `json:"sourceSize"`
}

type jsonMeta struct {
	Image string   `json:"image"`
	Size  jsonSize `json:"size"`
}
