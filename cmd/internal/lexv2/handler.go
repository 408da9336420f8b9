package lexv2

import "context"

type Fulfiller interface {
	Handle(ctx context.Context, ev *Event) *Response
}

// Handler adapts a Fulfiller to the Lambda runtime. Failures are always
// rendered as dialogue responses, so the returned error is never set.
func Handler(f Fulfiller) func(context.Context, Event) (*Response, error) {
	return func(ctx context.Context, ev Event) (*Response, error) {
		return f.Handle(ctx, &ev), nil
	}
}
