// Package ocr classifies grouper candidates with Tesseract.
//
// Each candidate is cut out of the page image with the other components
// blanked to white, padded, and recognised in single-character mode via
// gosseract. Tesseract's symbol confidences (0..100) become additive costs
// of -ln(confidence/100), so a certain answer costs 0 and cost grows as
// confidence drops. The resulting (class, cost) pairs are what
// grouper.SetClass expects.
//
// # Prerequisites
//
// Tesseract and the language data must be installed:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
package ocr
