// Package filter provides per-pixel color filters for scanned documents.
//
// Filters are 4x5 color matrices applied to straight-alpha RGBA8 images:
//   - Brightness, contrast and saturation adjustments
//   - Grayscale and invert
//   - High contrast (1.5 gain, -50 bias) for text on paper
//
// The scan preview offers three presets built from these: Original,
// Grayscale and HighContrast. Filters never modify their input and process
// rows in parallel bands.
package filter
