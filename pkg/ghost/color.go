package ghost

import (
	"context"

	"github.com/matzehuels/ghostify/pkg/doc"
)

// textFills derives the ghost fill for a text node.
//
// The font must be loaded before segment queries report accurate
// per-character styling, so that host call always comes first. The
// fallback chain is then:
//
//  1. Mixed-fill text (more than one styled segment): the first
//     segment with a non-empty fill list wins.
//  2. The node's own top-level fills, if non-empty. This also covers
//     mixed-fill text where every segment had an empty fill list.
//  3. A single opaque solid black fill.
func (e *Engine) textFills(ctx context.Context, n *doc.Node) ([]doc.Paint, error) {
	if err := e.host.LoadFont(ctx, n); err != nil {
		return nil, err
	}
	segments, err := e.host.TextSegments(ctx, n)
	if err != nil {
		return nil, err
	}

	if len(segments) > 1 {
		for _, s := range segments {
			if len(s.Fills) > 0 {
				return s.Fills, nil
			}
		}
	}
	if len(n.Fills) > 0 {
		return n.Fills, nil
	}
	return doc.SolidBlack(), nil
}
