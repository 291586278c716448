package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/docscan"
)

// parseQuad reads four "x,y" pairs separated by spaces or semicolons, in
// TL TR BR BL order. An empty string selects the full frame.
func parseQuad(s string) (docscan.Quad, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return docscan.FullFrame, nil
	}
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ';' || r == ' ' || r == '\t'
	})
	if len(fields) != 4 {
		return docscan.Quad{}, fmt.Errorf("%w: want 4 corners, got %d", docscan.ErrInvalidPoint, len(fields))
	}

	var q docscan.Quad
	for i, f := range fields {
		xs, ys, ok := strings.Cut(f, ",")
		if !ok {
			return docscan.Quad{}, fmt.Errorf("%w: %s corner %q is not x,y", docscan.ErrInvalidPoint, docscan.Corner(i), f)
		}
		x, err := strconv.ParseFloat(xs, 64)
		if err != nil {
			return docscan.Quad{}, fmt.Errorf("%w: %s x: %w", docscan.ErrInvalidPoint, docscan.Corner(i), err)
		}
		y, err := strconv.ParseFloat(ys, 64)
		if err != nil {
			return docscan.Quad{}, fmt.Errorf("%w: %s y: %w", docscan.ErrInvalidPoint, docscan.Corner(i), err)
		}
		q[i] = docscan.Pt(x, y)
	}
	if err := q.Validate(); err != nil {
		return docscan.Quad{}, err
	}
	return q, nil
}

func formatQuad(q docscan.Quad) string {
	parts := make([]string, len(q))
	for i, p := range q {
		parts[i] = strconv.FormatFloat(p.X, 'f', -1, 64) + "," + strconv.FormatFloat(p.Y, 'f', -1, 64)
	}
	return strings.Join(parts, " ")
}
