package console

import (
	"context"
	"strconv"
	"strings"
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

// Page es el estado de una lista: carga, búsqueda, show-N/show-all y
// selección única. No es seguro para uso concurrente; las pantallas la
// actualizan recién después de juntar sus fetches.
type Page[T any] struct {
	size  int
	id    func(T) int64
	label func(T) string

	state    State
	err      error
	items    []T
	query    string
	showAll  bool
	selected int64
}

// NewPage: size es cuántos ítems se muestran antes de "ver todos".
func NewPage[T any](size int, id func(T) int64, label func(T) string) *Page[T] {
	return &Page[T]{size: size, id: id, label: label}
}

// Load pasa por loading y termina en ready o error. En error se conservan
// los ítems anteriores.
func (p *Page[T]) Load(ctx context.Context, fetch func(context.Context) ([]T, error)) error {
	p.begin()
	items, err := fetch(ctx)
	p.finish(items, err)
	return err
}

func (p *Page[T]) begin() {
	p.state = StateLoading
	p.err = nil
}

func (p *Page[T]) finish(items []T, err error) {
	if err != nil {
		p.state = StateError
		p.err = err
		return
	}
	p.items = items
	p.state = StateReady
	if _, ok := p.Selected(); !ok {
		p.selected = 0
	}
}

func (p *Page[T]) State() State { return p.state }
func (p *Page[T]) Err() error   { return p.err }
func (p *Page[T]) Len() int     { return len(p.items) }

func (p *Page[T]) Items() []T {
	return append([]T(nil), p.items...)
}

// Search filtra sin volver a pedir datos: substring sin mayúsculas sobre
// la etiqueta o el id.
func (p *Page[T]) Search(q string) {
	p.query = strings.ToLower(strings.TrimSpace(q))
}

func (p *Page[T]) Query() string { return p.query }

func (p *Page[T]) Filtered() []T {
	if p.query == "" {
		return p.Items()
	}
	out := make([]T, 0, len(p.items))
	for _, it := range p.items {
		if strings.Contains(strings.ToLower(p.label(it)), p.query) ||
			strings.Contains(strconv.FormatInt(p.id(it), 10), p.query) {
			out = append(out, it)
		}
	}
	return out
}

// Visible es lo que se muestra: los primeros size filtrados, o todos.
func (p *Page[T]) Visible() []T {
	f := p.Filtered()
	if p.showAll || p.size <= 0 || len(f) <= p.size {
		return f
	}
	return f[:p.size]
}

// HasMore indica si hay filtrados ocultos por el límite.
func (p *Page[T]) HasMore() bool {
	return !p.showAll && p.size > 0 && len(p.Filtered()) > p.size
}

func (p *Page[T]) ShowAll() bool { return p.showAll }

func (p *Page[T]) ToggleShowAll() { p.showAll = !p.showAll }

// Toggle selecciona id, o lo deselecciona si ya estaba.
func (p *Page[T]) Toggle(id int64) {
	if p.selected == id {
		p.selected = 0
		return
	}
	p.selected = id
}

// Selected devuelve el ítem seleccionado; editar, borrar y ver detalle lo exigen.
func (p *Page[T]) Selected() (T, bool) {
	if p.selected != 0 {
		for _, it := range p.items {
			if p.id(it) == p.selected {
				return it, true
			}
		}
	}
	var zero T
	return zero, false
}

func (p *Page[T]) SelectedID() int64 { return p.selected }

// Upsert reemplaza el ítem con el mismo id o lo agrega al final.
func (p *Page[T]) Upsert(v T) {
	id := p.id(v)
	for i, it := range p.items {
		if p.id(it) == id {
			p.items[i] = v
			return
		}
	}
	p.items = append(p.items, v)
}
