package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/ironsheep/lattice-grouper/internal/fst"
	"github.com/ironsheep/lattice-grouper/internal/grouper"
	"github.com/ironsheep/lattice-grouper/internal/imaging"
	"github.com/ironsheep/lattice-grouper/internal/ocr"
	"github.com/ironsheep/lattice-grouper/internal/raster"
)

// === Grouper Session Handlers ===

type grouperOpenArgs struct {
	SegmentationPath string `json:"segmentation_path"`
	PagePath         string `json:"page_path"`
	Grouper          string `json:"grouper"`
	// Options override the configured defaults by option name.
	Options map[string]string `json:"options"`
	// Characters installs the segmentation as a character segmentation.
	Characters bool `json:"characters"`
}

// OpenResult identifies a new grouper session.
type OpenResult struct {
	Session    string `json:"session"`
	Grouper    string `json:"grouper"`
	Candidates int    `json:"candidates"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	PageFormat string `json:"page_format,omitempty"`
	Transcript string `json:"transcript,omitempty"`
}

// checkPage verifies that a session's page image matches its segmentation
// and returns the page format. An empty path means no page.
func (s *Server) checkPage(g grouper.Grouper, path string) (string, error) {
	if path == "" {
		return "", nil
	}
	info, err := imaging.LoadImageInfo(s.cache, path)
	if err != nil {
		return "", err
	}
	b := g.Bounds()
	if info.Width != b.Dx() || info.Height != b.Dy() {
		return "", fmt.Errorf("page %s is %dx%d, segmentation is %dx%d",
			path, info.Width, info.Height, b.Dx(), b.Dy())
	}
	s.log.Debug("page loaded", "path", path, "format", info.Format, "bytes", info.FileSizeBytes, "cached_images", s.cache.Len())
	return info.Format, nil
}

// newGrouper builds a grouper from the configured defaults plus overrides.
// Overrides are applied in name order so errors are deterministic.
func (s *Server) newGrouper(name string, overrides map[string]string) (grouper.Grouper, error) {
	opts := s.cfg.Grouper
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := opts.Set(k, overrides[k]); err != nil {
			return nil, err
		}
	}
	return grouper.New(name, opts)
}

func (s *Server) handleGrouperOpen(args json.RawMessage) (interface{}, error) {
	var a grouperOpenArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	g, err := s.newGrouper(a.Grouper, a.Options)
	if err != nil {
		return nil, err
	}
	seg, err := s.cache.LoadLabels(a.SegmentationPath)
	if err != nil {
		return nil, err
	}
	if a.Characters {
		err = g.SetCSegmentation(seg)
	} else {
		err = g.SetSegmentation(seg)
	}
	if err != nil {
		return nil, err
	}
	format, err := s.checkPage(g, a.PagePath)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	sess := s.addSession(g, a.PagePath, false)
	s.mu.Unlock()

	s.log.Info("session opened", "session", sess.id, "segmentation", a.SegmentationPath, "candidates", g.Length())
	b := g.Bounds()
	return &OpenResult{
		Session:    sess.id,
		Grouper:    g.Name(),
		Candidates: g.Length(),
		Width:      b.Dx(),
		Height:     b.Dy(),
		PageFormat: format,
	}, nil
}

type grouperOpenGTArgs struct {
	SegmentationPath          string            `json:"segmentation_path"`
	CharacterSegmentationPath string            `json:"character_segmentation_path"`
	Transcript                string            `json:"transcript"`
	PagePath                  string            `json:"page_path"`
	Grouper                   string            `json:"grouper"`
	Options                   map[string]string `json:"options"`
}

func (s *Server) handleGrouperOpenGT(args json.RawMessage) (interface{}, error) {
	var a grouperOpenGTArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	g, err := s.newGrouper(a.Grouper, a.Options)
	if err != nil {
		return nil, err
	}
	seg, err := s.cache.LoadLabels(a.SegmentationPath)
	if err != nil {
		return nil, err
	}
	cseg, err := s.cache.LoadLabels(a.CharacterSegmentationPath)
	if err != nil {
		return nil, err
	}
	if err := g.SetSegmentationAndGT(seg, cseg, a.Transcript); err != nil {
		var te *grouper.TranscriptError
		if errors.As(err, &te) {
			s.log.Debug("transcript mismatch", "transcript", te.Transcript, "length", te.Length, "labels", te.Labels)
		}
		return nil, err
	}
	format, err := s.checkPage(g, a.PagePath)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	sess := s.addSession(g, a.PagePath, true)
	s.mu.Unlock()

	s.log.Info("session opened", "session", sess.id, "segmentation", a.SegmentationPath, "candidates", g.Length(), "ground_truth", true)
	res := &OpenResult{
		Session:    sess.id,
		Grouper:    g.Name(),
		Candidates: g.Length(),
		Width:      g.Bounds().Dx(),
		Height:     g.Bounds().Dy(),
		PageFormat: format,
	}
	if t, ok := g.(interface{ Transcript() string }); ok {
		res.Transcript = t.Transcript()
	}
	return res, nil
}

type sessionArgs struct {
	Session string `json:"session"`
}

type grouperCandidatesArgs struct {
	Session string `json:"session"`
	Offset  int    `json:"offset"`
	Limit   int    `json:"limit"`
}

// CandidateInfo describes one candidate group.
type CandidateInfo struct {
	Index      int    `json:"index"`
	Box        Box    `json:"box"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
	Segments   []int  `json:"segments"`
	PixelSpace int    `json:"pixel_space"`
	GTIndex    *int   `json:"gt_index,omitempty"`
	GTClass    string `json:"gt_class,omitempty"`
}

// CandidatesResult is one page of a session's candidates.
type CandidatesResult struct {
	Total      int             `json:"total"`
	Candidates []CandidateInfo `json:"candidates"`
}

func (s *Server) handleGrouperCandidates(args json.RawMessage) (interface{}, error) {
	var a grouperCandidatesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Offset < 0 || a.Limit < 0 {
		return nil, fmt.Errorf("offset and limit must not be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookupSession(a.Session)
	if err != nil {
		return nil, err
	}
	g := sess.grouper

	end := g.Length()
	if a.Limit > 0 {
		end = min(end, a.Offset+a.Limit)
	}
	res := &CandidatesResult{Total: g.Length(), Candidates: []CandidateInfo{}}
	for i := a.Offset; i < end; i++ {
		info := CandidateInfo{
			Index:      i,
			Box:        toBox(g.BoundingBox(i)),
			Start:      g.Start(i),
			End:        g.End(i),
			Segments:   g.Segments(i),
			PixelSpace: g.PixelSpace(i),
		}
		if sess.hasGT {
			idx := g.GTIndex(i)
			info.GTIndex = &idx
			c, err := g.GTClass(i)
			if err != nil {
				return nil, err
			}
			if c >= 0 {
				info.GTClass = string(c)
			}
		}
		res.Candidates = append(res.Candidates, info)
	}
	return res, nil
}

type grouperExtractArgs struct {
	Session string `json:"session"`
	Index   int    `json:"index"`
	Grow    int    `json:"grow"`
	// Mode is "mask", "masked" (default), "sliced" or "crop".
	Mode       string  `json:"mode"`
	Background *int    `json:"background"`
	Scale      float64 `json:"scale"`
}

// ExtractResult is a rendered candidate.
type ExtractResult struct {
	Box   Box                   `json:"box"`
	Image *imaging.EncodedImage `json:"image"`
}

func (s *Server) handleGrouperExtract(args json.RawMessage) (interface{}, error) {
	var a grouperExtractArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	if a.Mode == "" {
		a.Mode = "masked"
	}
	if a.Background != nil && (*a.Background < 0 || *a.Background > 255) {
		return nil, fmt.Errorf("background must be in 0..255, got %d", *a.Background)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookupSession(a.Session)
	if err != nil {
		return nil, err
	}
	g := sess.grouper

	box, mask, err := g.Mask(a.Index, a.Grow)
	if err != nil {
		return nil, err
	}
	if a.Mode == "mask" {
		enc, err := imaging.EncodeArray(mask, a.Scale)
		if err != nil {
			return nil, err
		}
		return &ExtractResult{Box: toBox(box), Image: enc}, nil
	}
	if a.Mode == "crop" {
		if sess.pagePath == "" {
			return nil, fmt.Errorf("session %s has no page image", sess.id)
		}
		img, err := s.cache.Load(sess.pagePath)
		if err != nil {
			return nil, err
		}
		crop, err := imaging.Crop(img, box.Add(img.Bounds().Min))
		if err != nil {
			return nil, err
		}
		enc, err := imaging.Encode(crop, a.Scale)
		if err != nil {
			return nil, err
		}
		return &ExtractResult{Box: toBox(box), Image: enc}, nil
	}

	page, err := s.page(sess)
	if err != nil {
		return nil, err
	}
	var out *raster.Array[uint8]
	switch {
	case a.Mode == "masked" && a.Background == nil:
		out, _, err = grouper.ExtractMasked(g, page, a.Index, a.Grow)
	case a.Mode == "masked":
		out, err = grouper.ExtractWithBackground(g, page, uint8(*a.Background), a.Index, a.Grow)
	case a.Mode == "sliced" && a.Background == nil:
		out, _, err = grouper.ExtractSlicedMasked(g, page, a.Index, a.Grow)
	case a.Mode == "sliced":
		out, err = grouper.ExtractSlicedWithBackground(g, page, uint8(*a.Background), a.Index, a.Grow)
	default:
		return nil, fmt.Errorf("unknown extract mode %q", a.Mode)
	}
	if err != nil {
		return nil, err
	}
	enc, err := imaging.EncodeArray(out, a.Scale)
	if err != nil {
		return nil, err
	}
	return &ExtractResult{Box: toBox(box), Image: enc}, nil
}

// page loads the grayscale page of a session.
func (s *Server) page(sess *session) (*raster.Array[uint8], error) {
	if sess.pagePath == "" {
		return nil, fmt.Errorf("session %s has no page image", sess.id)
	}
	return s.cache.LoadGray(sess.pagePath)
}

type grouperClassifyArgs struct {
	Session  string `json:"session"`
	Grow     *int   `json:"grow"`
	Mode     string `json:"mode"`
	Language string `json:"language"`
}

func (s *Server) handleGrouperClassify(args json.RawMessage) (interface{}, error) {
	var a grouperClassifyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	grow := 1
	if a.Grow != nil {
		grow = *a.Grow
	}
	mode := ocr.SingleChar
	switch a.Mode {
	case "", "char":
	case "word":
		mode = ocr.SingleWord
	default:
		return nil, fmt.Errorf("unknown classify mode %q", a.Mode)
	}
	if a.Language == "" {
		a.Language = s.cfg.OCRLanguage
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookupSession(a.Session)
	if err != nil {
		return nil, err
	}
	page, err := s.page(sess)
	if err != nil {
		return nil, err
	}

	c, err := ocr.NewClassifier(a.Language, mode)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	res, err := ocr.Annotate(c, sess.grouper, page, grow)
	if err != nil {
		return nil, err
	}
	s.log.Info("candidates classified", "session", sess.id, "classified", res.Classified, "candidates", res.Candidates)
	return res, nil
}

type grouperSetClassArgs struct {
	Session string  `json:"session"`
	Index   int     `json:"index"`
	Class   string  `json:"class"`
	Cost    float64 `json:"cost"`
}

func (s *Server) handleGrouperSetClass(args json.RawMessage) (interface{}, error) {
	var a grouperSetClassArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookupSession(a.Session)
	if err != nil {
		return nil, err
	}
	if err := sess.grouper.SetClass(a.Index, a.Class, a.Cost); err != nil {
		return nil, err
	}
	return map[string]interface{}{"ok": true}, nil
}

type grouperSetSpaceCostArgs struct {
	Session string  `json:"session"`
	Index   int     `json:"index"`
	Yes     float64 `json:"yes"`
	No      float64 `json:"no"`
}

func (s *Server) handleGrouperSetSpaceCost(args json.RawMessage) (interface{}, error) {
	var a grouperSetSpaceCostArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookupSession(a.Session)
	if err != nil {
		return nil, err
	}
	if err := sess.grouper.SetSpaceCost(a.Index, a.Yes, a.No); err != nil {
		return nil, err
	}
	return map[string]interface{}{"ok": true}, nil
}

func (s *Server) handleGrouperClearLattice(args json.RawMessage) (interface{}, error) {
	var a sessionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookupSession(a.Session)
	if err != nil {
		return nil, err
	}
	sess.grouper.ClearLattice()
	return map[string]interface{}{"ok": true}, nil
}

func (s *Server) handleGrouperLattice(args json.RawMessage) (interface{}, error) {
	var a sessionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookupSession(a.Session)
	if err != nil {
		return nil, err
	}
	t := fst.New()
	if err := sess.grouper.Lattice(t); err != nil {
		return nil, err
	}
	return t.Snapshot(), nil
}

func (s *Server) handleGrouperClose(args json.RawMessage) (interface{}, error) {
	var a sessionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.removeSession(a.Session); err != nil {
		return nil, err
	}
	s.log.Info("session closed", "session", a.Session)
	return map[string]interface{}{"ok": true}, nil
}
