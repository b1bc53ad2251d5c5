package events

import (
	"context"
	"errors"
)

type fanout []Publisher

// Fanout publishes every event to each publisher in order. Every publisher is
// tried; the failures are joined.
func Fanout(publishers ...Publisher) Publisher {
	return fanout(publishers)
}

func (f fanout) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f fanout) Close() {
	for _, p := range f {
		p.Close()
	}
}
