package editor

import (
	"fmt"
	"reflect"
	"time"

	"github.com/iw2rmb/quill/sched"
)

// TooltipItem is what a provider wants to show for a span of the document.
type TooltipItem struct {
	// Start and End are the document offsets the item describes, both
	// inclusive for hover purposes.
	Start, End int
	Data       any
}

// Contains reports whether the hovered offset still belongs to the item.
func (it TooltipItem) Contains(off int) bool {
	return off >= it.Start && off <= it.End
}

// Equal compares items by value.
func (it TooltipItem) Equal(o TooltipItem) bool {
	return it.Start == o.Start && it.End == o.End && reflect.DeepEqual(it.Data, o.Data)
}

// TooltipView is a host-side tooltip window created by a provider.
type TooltipView interface {
	Close()
}

// TooltipProvider supplies hover tooltips. GetItem returns nil when the
// provider has nothing for offset.
type TooltipProvider interface {
	GetItem(s *Session, offset int) (*TooltipItem, error)
	CreateView(s *Session, item TooltipItem, mods Modifiers) (TooltipView, error)
	// IsInteractive reports whether the pointer may move into view, which
	// keeps it open while hovered.
	IsInteractive(view TooltipView) bool
}

type TooltipState int

const (
	TooltipIdle TooltipState = iota
	TooltipScheduled
	TooltipShown
	TooltipHideScheduled
)

func (t TooltipState) String() string {
	switch t {
	case TooltipScheduled:
		return "scheduled"
	case TooltipShown:
		return "shown"
	case TooltipHideScheduled:
		return "hide-scheduled"
	default:
		return "idle"
	}
}

type tooltipRequest struct {
	offset int
	point  Point
	mods   Modifiers
	fireAt time.Time
}

type tooltipState struct {
	providers []TooltipProvider

	state     TooltipState
	req       tooltipRequest
	showTimer sched.Handle
	hideTimer sched.Handle

	item      *TooltipItem
	provider  TooltipProvider
	view      TooltipView
	point     Point // view point of the hover that showed item
	inTooltip bool
}

func (s *Session) AddTooltipProvider(p TooltipProvider) {
	s.tip.providers = append(s.tip.providers, p)
}

func (s *Session) RemoveTooltipProvider(p TooltipProvider) {
	for i, cur := range s.tip.providers {
		if cur == p {
			s.tip.providers = append(s.tip.providers[:i:i], s.tip.providers[i+1:]...)
			if s.tip.provider == p {
				s.HideTooltip()
			}
			return
		}
	}
}

func (s *Session) TooltipState() TooltipState { return s.tip.state }

// Tooltip returns the shown item and its view.
func (s *Session) Tooltip() (TooltipItem, TooltipView, bool) {
	if s.tip.item == nil {
		return TooltipItem{}, nil, false
	}
	return *s.tip.item, s.tip.view, true
}

// TooltipPoint returns the view point of the hover that showed the current
// tooltip. Hosts place the view next to it.
func (s *Session) TooltipPoint() (Point, bool) {
	if s.tip.item == nil {
		return Point{}, false
	}
	return s.tip.point, true
}

// PointerMotion reports the pointer at p (view coordinates). With the
// button held it continues the drag. Otherwise a shown tooltip whose item
// no longer covers the hovered offset gets a delayed hide and the hover
// request is scheduled or refreshed.
func (s *Session) PointerMotion(p Point, mods Modifiers) {
	if s.deferred(func() { s.PointerMotion(p, mods) }) {
		return
	}
	defer s.op()()
	if s.drag.pressed {
		s.PointerDrag(p)
		return
	}
	off := s.LocationToOffset(s.ViewToLocation(p))
	if s.tip.item != nil {
		if s.tip.item.Contains(off) {
			s.cancelHide()
			return
		}
		s.scheduleHide()
	}
	s.scheduleTooltip(off, p, mods)
}

// ShowTooltipAt requests a tooltip for offset after the dwell delay. Pending
// show and hide timers are cancelled first.
func (s *Session) ShowTooltipAt(offset int, p Point, mods Modifiers) {
	if s.deferred(func() { s.ShowTooltipAt(offset, p, mods) }) {
		return
	}
	defer s.op()()
	s.cancelShow()
	s.cancelHide()
	s.scheduleTooltip(offset, p, mods)
}

// HideTooltip closes the shown tooltip and cancels pending timers.
func (s *Session) HideTooltip() {
	s.cancelShow()
	s.cancelHide()
	if s.tip.view != nil {
		s.tip.view.Close()
	}
	s.tip.item, s.tip.provider, s.tip.view = nil, nil, nil
	s.tip.inTooltip = false
	s.tip.state = TooltipIdle
}

// PointerLeave reports that the pointer left the text area.
func (s *Session) PointerLeave() {
	s.cancelShow()
	if s.tip.item == nil {
		s.tip.state = TooltipIdle
		return
	}
	s.scheduleHide()
}

// TooltipPointerEnter reports the pointer entering the tooltip view.
func (s *Session) TooltipPointerEnter() {
	s.tip.inTooltip = true
	s.cancelHide()
}

// TooltipPointerLeave reports the pointer leaving the tooltip view.
func (s *Session) TooltipPointerLeave() {
	s.tip.inTooltip = false
	if s.tip.item != nil {
		s.scheduleHide()
	}
}

// scheduleTooltip records the latest hover request, reusing a pending show
// timer instead of starting another.
func (s *Session) scheduleTooltip(off int, p Point, mods Modifiers) {
	s.tip.req = tooltipRequest{
		offset: off,
		point:  p,
		mods:   mods,
		fireAt: s.sched.Now().Add(s.cfg.TooltipDelay),
	}
	if s.tip.showTimer == 0 {
		s.tip.showTimer = s.sched.Schedule(s.cfg.TooltipDelay, s.fireTooltip)
	}
	if s.tip.item == nil {
		s.tip.state = TooltipScheduled
	}
}

func (s *Session) fireTooltip() {
	s.tip.showTimer = 0
	if remaining := s.tip.req.fireAt.Sub(s.sched.Now()); remaining > s.cfg.TooltipDrift {
		s.tip.showTimer = s.sched.Schedule(remaining, s.fireTooltip)
		return
	}

	req := s.tip.req
	var (
		item     *TooltipItem
		provider TooltipProvider
	)
	for _, p := range s.tip.providers {
		it, err := s.queryProvider(p, req.offset)
		if err != nil {
			s.log.Warn().Err(err).Int("offset", req.offset).Msg("tooltip provider failed")
			continue
		}
		if it != nil {
			item, provider = it, p
			break
		}
	}

	if item == nil {
		s.HideTooltip()
		return
	}
	if s.tip.item != nil && s.tip.provider == provider && s.tip.item.Equal(*item) {
		s.cancelHide()
		s.tip.state = TooltipShown
		return
	}

	s.HideTooltip()
	view, err := s.createView(provider, *item, req.mods)
	if err != nil {
		s.log.Warn().Err(err).Int("offset", req.offset).Msg("tooltip view failed")
		return
	}
	s.tip.item, s.tip.provider, s.tip.view = item, provider, view
	s.tip.point = req.point
	s.tip.state = TooltipShown
}

// scheduleHide arms the delayed hide unless an interactive tooltip is
// hovered.
func (s *Session) scheduleHide() {
	if s.tip.inTooltip && s.tooltipInteractive() {
		return
	}
	if s.tip.hideTimer == 0 {
		s.tip.hideTimer = s.sched.Schedule(s.cfg.TooltipHideDelay, func() {
			s.tip.hideTimer = 0
			s.HideTooltip()
		})
	}
	s.tip.state = TooltipHideScheduled
}

func (s *Session) tooltipInteractive() bool {
	if s.tip.provider == nil || s.tip.view == nil {
		return false
	}
	interactive := false
	func() {
		defer func() {
			if r := recover(); r != nil {
				s.log.Warn().Interface("panic", r).Msg("tooltip provider IsInteractive panicked")
			}
		}()
		interactive = s.tip.provider.IsInteractive(s.tip.view)
	}()
	return interactive
}

func (s *Session) cancelShow() {
	if s.tip.showTimer != 0 {
		s.sched.Cancel(s.tip.showTimer)
		s.tip.showTimer = 0
	}
	if s.tip.state == TooltipScheduled {
		s.tip.state = TooltipIdle
	}
}

func (s *Session) cancelHide() {
	if s.tip.hideTimer != 0 {
		s.sched.Cancel(s.tip.hideTimer)
		s.tip.hideTimer = 0
	}
	if s.tip.state == TooltipHideScheduled {
		s.tip.state = TooltipShown
	}
}

func (s *Session) queryProvider(p TooltipProvider, off int) (item *TooltipItem, err error) {
	defer func() {
		if r := recover(); r != nil {
			item, err = nil, fmt.Errorf("tooltip provider %T panicked: %v", p, r)
		}
	}()
	item, err = p.GetItem(s, off)
	if err != nil {
		return nil, fmt.Errorf("tooltip provider %T: %w", p, err)
	}
	return item, nil
}

func (s *Session) createView(p TooltipProvider, item TooltipItem, mods Modifiers) (view TooltipView, err error) {
	defer func() {
		if r := recover(); r != nil {
			view, err = nil, fmt.Errorf("tooltip provider %T panicked: %v", p, r)
		}
	}()
	view, err = p.CreateView(s, item, mods)
	if err != nil {
		return nil, fmt.Errorf("tooltip provider %T: %w", p, err)
	}
	return view, nil
}
