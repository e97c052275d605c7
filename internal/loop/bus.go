package loop

// ResizeEvent reports the new viewport size in logical pixels.
type ResizeEvent struct {
	Width, Height int
}

// PointerEvent reports a pointer move in viewport coordinates.
type PointerEvent struct {
	X, Y float64
}

// ScrollEvent reports the page scroll offset after it changed.
type ScrollEvent struct {
	Y float64
}

// ClickEvent reports a primary button press in viewport coordinates.
type ClickEvent struct {
	X, Y float64
}

type listeners[E any] struct {
	order []uint64
	fns   map[uint64]func(E)
}

func (l *listeners[E]) add(id uint64, fn func(E)) {
	if l.fns == nil {
		l.fns = make(map[uint64]func(E))
	}
	l.fns[id] = fn
	l.order = append(l.order, id)
}

func (l *listeners[E]) remove(id uint64) {
	if _, ok := l.fns[id]; !ok {
		return
	}
	delete(l.fns, id)
	for i, v := range l.order {
		if v == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

func (l *listeners[E]) emit(e E) {
	// Copy so listeners may unsubscribe while being notified.
	ids := append([]uint64(nil), l.order...)
	for _, id := range ids {
		if fn, ok := l.fns[id]; ok {
			fn(e)
		}
	}
}

// Bus fans host input out to subscribed effects.
type Bus struct {
	nextID  uint64
	closed  bool
	resize  listeners[ResizeEvent]
	pointer listeners[PointerEvent]
	scroll  listeners[ScrollEvent]
	click   listeners[ClickEvent]
}

// NewBus returns an empty bus.
func NewBus() *Bus { return &Bus{} }

func subscribe[E any](b *Bus, l *listeners[E], fn func(E)) *Subscription {
	if b.closed || fn == nil {
		return &Subscription{}
	}
	b.nextID++
	l.add(b.nextID, fn)
	return &Subscription{id: b.nextID, cancel: l.remove}
}

// OnResize calls fn after every viewport resize.
func (b *Bus) OnResize(fn func(ResizeEvent)) *Subscription { return subscribe(b, &b.resize, fn) }

// OnPointer calls fn for every pointer move, in viewport coordinates.
func (b *Bus) OnPointer(fn func(PointerEvent)) *Subscription { return subscribe(b, &b.pointer, fn) }

// OnScroll calls fn whenever the scroll offset changes.
func (b *Bus) OnScroll(fn func(ScrollEvent)) *Subscription { return subscribe(b, &b.scroll, fn) }

// OnClick calls fn for every primary button press, in viewport coordinates.
func (b *Bus) OnClick(fn func(ClickEvent)) *Subscription { return subscribe(b, &b.click, fn) }

// EmitResize delivers e to the resize listeners in subscription order.
func (b *Bus) EmitResize(e ResizeEvent) { b.resize.emit(e) }

// EmitPointer delivers e to the pointer listeners.
func (b *Bus) EmitPointer(e PointerEvent) { b.pointer.emit(e) }

// EmitScroll delivers e to the scroll listeners.
func (b *Bus) EmitScroll(e ScrollEvent) { b.scroll.emit(e) }

// EmitClick delivers e to the click listeners.
func (b *Bus) EmitClick(e ClickEvent) { b.click.emit(e) }

// Listeners returns the total number of live listeners.
func (b *Bus) Listeners() int {
	return len(b.resize.fns) + len(b.pointer.fns) + len(b.scroll.fns) + len(b.click.fns)
}

// Close drops every listener and refuses new ones.
func (b *Bus) Close() {
	b.closed = true
	b.resize = listeners[ResizeEvent]{}
	b.pointer = listeners[PointerEvent]{}
	b.scroll = listeners[ScrollEvent]{}
	b.click = listeners[ClickEvent]{}
}
