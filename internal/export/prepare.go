package export

import "github.com/planweave/planweave/internal/render"

// screenshotModeCSS neutralizes editing chrome for the capture: outlines
// and drop shadows are editor affordances, not part of the designed
// visual. Elements marked data-keep-border carry an intentional border
// and keep their decoration.
const screenshotModeCSS = `.screenshot-mode *:not([data-keep-border]) { outline: none !important; box-shadow: none !important; }`

// preparedRegion is a region in screenshot mode: wrapped in the capture
// marker, with neutralization overrides attached. restore undoes the
// transient state after the capture, success or not; repeat calls are
// no-ops.
type preparedRegion struct {
	html     string
	opts     Options
	restored bool
}

func prepareForCapture(region render.Region, background string) *preparedRegion {
	return &preparedRegion{
		html: `<div class="screenshot-mode">` + region.HTML + `</div>`,
		opts: Options{
			Background:     background,
			StyleOverrides: screenshotModeCSS,
			KeepDecoration: keepExplicitBorder,
		},
	}
}

func (p *preparedRegion) restore() {
	if p.restored {
		return
	}
	p.restored = true
	p.opts.StyleOverrides = ""
}

// keepExplicitBorder is the per-node rule implementations apply while
// walking the subtree: decoration survives only where it was asked for.
func keepExplicitBorder(attrs map[string]string) bool {
	return attrs["data-keep-border"] == "true"
}
