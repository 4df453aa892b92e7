// Package text lays out vscene.Text blocks and rasterizes them into
// coverage masks.
//
// Fonts live in a Registry. A Registry can only be created from at least
// one valid font, so any code holding one can render text. RegisterFonts
// and DefaultRegistry provide a process-wide registry for callers that
// prefer a global; registering again appends to it.
//
// Two Layouter implementations are provided:
//
//   - ShapingLayouter shapes each line with the HarfBuzz port from
//     go-text/typesetting, so kerning and ligatures are applied.
//   - ManualLayouter measures text from the font's advance and kerning
//     tables only.
//
// Both wrap greedily: words are appended to the current line while the
// line still fits the block width; a word that does not fit starts a new
// line, and a word wider than the block is placed alone on its own line
// rather than being split. Lines whose top would fall below the block
// height are dropped.
//
// Rasterize renders a laid-out Block into an *image.Alpha mask that a
// compositor draws above the shape layer.
package text
