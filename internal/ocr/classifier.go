package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/lattice-grouper/internal/grouper"
	"github.com/ironsheep/lattice-grouper/internal/raster"
)

const (
	// padding is the white border added around a crop; Tesseract misreads
	// glyphs that touch the image edge.
	padding = 8
	// minConfidence keeps the cost of a zero-confidence symbol finite.
	minConfidence = 0.001
)

// Mode selects how Tesseract segments a candidate crop.
type Mode int

const (
	// SingleChar treats every crop as one character.
	SingleChar Mode = iota
	// SingleWord lets Tesseract return several characters for wide candidates.
	SingleWord
)

func (m Mode) psm() gosseract.PageSegMode {
	if m == SingleWord {
		return gosseract.PSM_SINGLE_WORD
	}
	return gosseract.PSM_SINGLE_CHAR
}

// Classifier wraps one Tesseract client. It is safe for concurrent use;
// calls are serialised.
type Classifier struct {
	mu       sync.Mutex
	client   *gosseract.Client
	language string
}

// NewClassifier creates a classifier for a Tesseract language code such as "eng".
func NewClassifier(language string, mode Mode) (*Classifier, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage(language); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetPageSegMode(mode.psm()); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	return &Classifier{client: client, language: language}, nil
}

// Language returns the Tesseract language code.
func (c *Classifier) Language() string { return c.language }

// Close releases the Tesseract client.
func (c *Classifier) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.client.Close()
}

// Classify recognises crop and returns at most one hypothesis. The class is
// the concatenation of the recognised symbols, the cost the sum of their
// costs. A crop Tesseract finds nothing in yields no hypothesis.
func (c *Classifier) Classify(crop image.Image) ([]grouper.Hypothesis, error) {
	data, err := encodePadded(crop)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.client.SetImageFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}
	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_SYMBOL)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	var class strings.Builder
	cost := 0.0
	for _, box := range boxes {
		word := strings.TrimSpace(box.Word)
		if word == "" {
			continue
		}
		class.WriteString(word)
		cost += ConfidenceCost(box.Confidence)
	}
	if class.Len() == 0 {
		return nil, nil
	}
	return []grouper.Hypothesis{{Class: class.String(), Cost: cost}}, nil
}

// ConfidenceCost converts a Tesseract confidence in 0..100 to -ln(p).
func ConfidenceCost(confidence float64) float64 {
	p := math.Max(confidence/100, minConfidence)
	if p > 1 {
		p = 1
	}
	return -math.Log(p)
}

// encodePadded renders crop onto a white canvas with a padding border and
// encodes it as PNG.
func encodePadded(crop image.Image) ([]byte, error) {
	b := crop.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("empty crop %v", b)
	}
	canvas := imaging.New(b.Dx()+2*padding, b.Dy()+2*padding, color.White)
	canvas = imaging.Paste(canvas, crop, image.Pt(padding, padding))

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode crop: %w", err)
	}
	return buf.Bytes(), nil
}

// Annotation summarises one Annotate run.
type Annotation struct {
	Candidates int `json:"candidates"`
	Classified int `json:"classified"`
}

// Annotate classifies every candidate of g over page and stores the
// hypotheses with SetClass. Pixels outside a candidate's mask are blanked to
// white so neighbouring components do not leak into the crop.
func Annotate(c *Classifier, g grouper.Grouper, page *raster.Array[uint8], grow int) (Annotation, error) {
	res := Annotation{Candidates: g.Length()}
	for i := 0; i < g.Length(); i++ {
		crop, err := grouper.ExtractWithBackground(g, page, 255, i, grow)
		if err != nil {
			return res, fmt.Errorf("candidate %d: %w", i, err)
		}
		hyps, err := c.Classify(raster.ToGray(crop))
		if err != nil {
			return res, fmt.Errorf("candidate %d: %w", i, err)
		}
		for _, h := range hyps {
			if err := g.SetClass(i, h.Class, h.Cost); err != nil {
				return res, err
			}
		}
		if len(hyps) > 0 {
			res.Classified++
		}
	}
	return res, nil
}
