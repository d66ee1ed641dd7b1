package client

import (
	"context"
	"fmt"
)

// Page is the state one dashboard view owns: its fetched items and the
// error message of the last failed load. Pages never share state.
type Page[T any] struct {
	Items []T
	Err   string
}

// Load runs fetch once. On failure Items is emptied and Err holds the
// message; there is no retry, a caller reloads explicitly.
func (p *Page[T]) Load(ctx context.Context, fetch func(context.Context) ([]T, error)) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			p.Items = []T{}
			p.Err = fmt.Sprint(r)
			ok = false
		}
	}()

	items, err := fetch(ctx)
	if err != nil {
		p.Items = []T{}
		p.Err = err.Error()
		return false
	}
	if items == nil {
		items = []T{}
	}
	p.Items = items
	p.Err = ""
	return true
}

func (p *Page[T]) Failed() bool { return p.Err != "" }
