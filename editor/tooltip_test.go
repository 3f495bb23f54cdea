package editor

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/quill/buffer"
	"github.com/iw2rmb/quill/sched"
)

type fakeView struct{ closed int }

func (v *fakeView) Close() { v.closed++ }

type fakeProvider struct {
	queries     []int
	item        func(off int) *TooltipItem
	err         error
	panics      bool
	interactive bool
	views       []*fakeView
}

func (p *fakeProvider) GetItem(_ *Session, off int) (*TooltipItem, error) {
	p.queries = append(p.queries, off)
	if p.panics {
		panic("provider exploded")
	}
	if p.err != nil {
		return nil, p.err
	}
	if p.item == nil {
		return nil, nil
	}
	return p.item(off), nil
}

func (p *fakeProvider) CreateView(_ *Session, _ TooltipItem, _ Modifiers) (TooltipView, error) {
	v := &fakeView{}
	p.views = append(p.views, v)
	return v, nil
}

func (p *fakeProvider) IsInteractive(TooltipView) bool { return p.interactive }

// wordItems returns an item covering the word around off.
func wordItems(s *Session) func(int) *TooltipItem {
	return func(off int) *TooltipItem {
		r := s.Buffer().WordRange(s.OffsetToLocation(off))
		return &TooltipItem{
			Start: s.LocationToOffset(r.Start),
			End:   s.LocationToOffset(r.End),
			Data:  s.Buffer().TextIn(r),
		}
	}
}

func TestTooltip_DebounceQueriesLatestOffsetOnce(t *testing.T) {
	s, clock := newTestSession(t, "alpha beta gamma")
	p := &fakeProvider{item: wordItems(s)}
	s.AddTooltipProvider(p)

	s.ShowTooltipAt(1, Point{}, 0)
	clock.Advance(200 * time.Millisecond)
	s.ShowTooltipAt(7, Point{X: 7, Y: 2}, 0)
	require.Equal(t, TooltipScheduled, s.TooltipState())
	_, ok := s.TooltipPoint()
	require.False(t, ok)

	clock.Advance(DefaultTooltipDelay)

	require.Equal(t, []int{7}, p.queries)
	require.Equal(t, TooltipShown, s.TooltipState())
	item, _, ok := s.Tooltip()
	require.True(t, ok)
	require.Equal(t, "beta", item.Data)
	at, ok := s.TooltipPoint()
	require.True(t, ok)
	require.Equal(t, Point{X: 7, Y: 2}, at)
}

func TestTooltip_DriftReschedulesForRemainder(t *testing.T) {
	s, clock := newTestSession(t, "alpha beta gamma")
	p := &fakeProvider{item: wordItems(s)}
	s.AddTooltipProvider(p)

	s.PointerMotion(Point{X: 1}, 0)
	clock.Advance(400 * time.Millisecond)
	s.PointerMotion(Point{X: 7}, 0)

	// The first timer fires with 400ms still to go and is re-armed.
	clock.Advance(250 * time.Millisecond)
	require.Empty(t, p.queries)
	require.Equal(t, TooltipScheduled, s.TooltipState())

	clock.Advance(400 * time.Millisecond)
	require.Equal(t, []int{7}, p.queries)
	require.Equal(t, TooltipShown, s.TooltipState())
}

func TestTooltip_WithinDriftFiresImmediately(t *testing.T) {
	s, clock := newTestSession(t, "alpha beta gamma")
	p := &fakeProvider{item: wordItems(s)}
	s.AddTooltipProvider(p)

	s.PointerMotion(Point{X: 1}, 0)
	clock.Advance(30 * time.Millisecond)
	s.PointerMotion(Point{X: 2}, 0)
	clock.Advance(DefaultTooltipDelay - 30*time.Millisecond)

	require.Equal(t, []int{2}, p.queries)
}

func TestTooltip_MotionOutsideItemSchedulesHide(t *testing.T) {
	s, clock := newTestSession(t, "alpha beta gamma")
	p := &fakeProvider{item: wordItems(s)}
	s.AddTooltipProvider(p)
	s.PointerMotion(Point{X: 7}, 0)
	clock.Advance(DefaultTooltipDelay)
	require.Equal(t, TooltipShown, s.TooltipState())

	s.PointerMotion(Point{X: 8}, 0)
	require.Equal(t, TooltipShown, s.TooltipState())

	s.PointerMotion(Point{X: 13}, 0)
	require.Equal(t, TooltipHideScheduled, s.TooltipState())

	clock.Advance(DefaultTooltipHideDelay)
	require.Equal(t, TooltipIdle, s.TooltipState())
	require.Equal(t, 1, p.views[0].closed)
}

func TestTooltip_SameItemCancelsHide(t *testing.T) {
	s, clock := newTestSession(t, "alpha beta gamma")
	p := &fakeProvider{item: func(int) *TooltipItem { return &TooltipItem{Start: 0, End: 3, Data: "same"} }}
	s.AddTooltipProvider(p)
	s.ShowTooltipAt(1, Point{}, 0)
	clock.Advance(DefaultTooltipDelay)
	require.Equal(t, TooltipShown, s.TooltipState())

	s.PointerLeave()
	require.Equal(t, TooltipHideScheduled, s.TooltipState())
	s.ShowTooltipAt(12, Point{}, 0)
	clock.Advance(DefaultTooltipDelay)

	require.Equal(t, TooltipShown, s.TooltipState())
	require.Len(t, p.views, 1)
	require.Zero(t, p.views[0].closed)
}

func TestTooltip_InteractiveStaysWhileHovered(t *testing.T) {
	s, clock := newTestSession(t, "alpha beta gamma")
	p := &fakeProvider{item: wordItems(s), interactive: true}
	s.AddTooltipProvider(p)
	s.ShowTooltipAt(1, Point{}, 0)
	clock.Advance(DefaultTooltipDelay)

	s.PointerLeave()
	s.TooltipPointerEnter()
	clock.Advance(time.Second)
	require.Equal(t, TooltipShown, s.TooltipState())

	s.TooltipPointerLeave()
	clock.Advance(DefaultTooltipHideDelay)
	require.Equal(t, TooltipIdle, s.TooltipState())
}

func TestTooltip_ProviderFailuresAreSkipped(t *testing.T) {
	var out bytes.Buffer
	log := zerolog.New(&out)
	clock := sched.NewManual(testEpoch)
	s := NewSession(buffer.New("alpha", buffer.Options{}), Config{Scheduler: clock, Logger: &log})
	defer s.Close()

	bad := &fakeProvider{panics: true}
	failing := &fakeProvider{err: errors.New("index not ready")}
	good := &fakeProvider{item: wordItems(s)}
	s.AddTooltipProvider(bad)
	s.AddTooltipProvider(failing)
	s.AddTooltipProvider(good)

	s.ShowTooltipAt(2, Point{}, 0)
	clock.Advance(DefaultTooltipDelay)

	require.Equal(t, TooltipShown, s.TooltipState())
	require.Len(t, good.views, 1)
	require.Equal(t, []int{2}, bad.queries)
	require.Contains(t, out.String(), "provider exploded")
	require.Contains(t, out.String(), "index not ready")
}

func TestTooltip_NoResultHides(t *testing.T) {
	s, clock := newTestSession(t, "alpha")
	s.AddTooltipProvider(&fakeProvider{})
	s.ShowTooltipAt(2, Point{}, 0)
	clock.Advance(DefaultTooltipDelay)
	require.Equal(t, TooltipIdle, s.TooltipState())
}

func TestTooltip_EditCancelsPendingShow(t *testing.T) {
	s, clock := newTestSession(t, "alpha")
	p := &fakeProvider{item: wordItems(s)}
	s.AddTooltipProvider(p)
	s.ShowTooltipAt(2, Point{}, 0)

	s.Buffer().Insert(0, "x")
	clock.Advance(time.Second)

	require.Empty(t, p.queries)
	require.Equal(t, TooltipIdle, s.TooltipState())
}

func TestTooltip_RemoveProviderHidesItsTooltip(t *testing.T) {
	s, clock := newTestSession(t, "alpha")
	p := &fakeProvider{item: wordItems(s)}
	s.AddTooltipProvider(p)
	s.ShowTooltipAt(2, Point{}, 0)
	clock.Advance(DefaultTooltipDelay)

	s.RemoveTooltipProvider(p)

	require.Equal(t, TooltipIdle, s.TooltipState())
	require.Equal(t, 1, p.views[0].closed)
}

func TestTooltipItem_ContainsIsEndInclusive(t *testing.T) {
	it := TooltipItem{Start: 2, End: 5}
	require.False(t, it.Contains(1))
	require.True(t, it.Contains(2))
	require.True(t, it.Contains(5))
	require.False(t, it.Contains(6))
	require.True(t, it.Equal(TooltipItem{Start: 2, End: 5}))
	require.False(t, it.Equal(TooltipItem{Start: 2, End: 5, Data: []int{1}}))
}
