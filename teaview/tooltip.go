package teaview

import (
	"fmt"

	"github.com/iw2rmb/quill/editor"
)

// TextTooltips is a tooltip provider whose items render as one line of
// text at the bottom of the view.
type TextTooltips struct {
	// Lookup returns the item for offset, if any. The item's Data is
	// formatted with fmt.Sprint.
	Lookup func(s *editor.Session, offset int) (editor.TooltipItem, bool)
}

func (p *TextTooltips) GetItem(s *editor.Session, offset int) (*editor.TooltipItem, error) {
	if p.Lookup == nil {
		return nil, nil
	}
	it, ok := p.Lookup(s, offset)
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (p *TextTooltips) CreateView(_ *editor.Session, item editor.TooltipItem, _ editor.Modifiers) (editor.TooltipView, error) {
	return &TextView{Text: fmt.Sprint(item.Data)}, nil
}

func (p *TextTooltips) IsInteractive(editor.TooltipView) bool { return false }

// TextView is the view created by TextTooltips.
type TextView struct {
	Text   string
	closed bool
}

func (v *TextView) Close() { v.closed = true }

func (v *TextView) Closed() bool { return v.closed }
