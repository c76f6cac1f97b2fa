package rail

import (
	"context"
	"errors"
	"time"
)

// Handlers are the terminal closures of a chain. Both are optional; a
// missing handler makes the corresponding outcome yield nil.
type Handlers struct {
	OnAccept Accept
	OnReject Reject
}

// Execute runs the step list once, synchronously, in declaration order.
//
// Per step: the producer is evaluated and its value stored in the record
// under the step name; the guard (if any) then runs in a scope that
// already holds that value. A falsy guard halts the chain: the reject
// handler receives the halting step's name and value and its result is
// returned. After the guard passes, the mirror target (if any) is written
// to the context object and the side effects run in order. When every
// step passes, the accept handler runs in the final scope.
//
// The error return carries only build errors, lookup failures and mirror
// misuse; halts never surface as errors.
func Execute(ctx context.Context, steps []*Step, h Handlers, contextObj any) (any, error) {
	if err := validate(steps); err != nil {
		return nil, err
	}

	s := newScope(contextObj)

	for _, st := range steps {
		value := st.producer(ctx, s)
		if s.err != nil {
			return nil, s.err
		}
		s.set(st.name, value)

		if st.guard != nil {
			ok := st.guard(ctx, s)
			if s.err != nil {
				return nil, s.err
			}
			if !ok {
				halt := Halt{Step: st.name, Value: value, At: time.Now().UTC()}
				if h.OnReject != nil {
					return h.OnReject(ctx, halt), nil
				}
				return nil, nil
			}
		}

		if st.mirror != "" {
			if err := s.members.setMember(st.mirror, value); err != nil {
				return nil, err
			}
		}

		for _, effect := range st.effects {
			effect(ctx, s)
			if s.err != nil {
				return nil, s.err
			}
		}
	}

	if h.OnAccept != nil {
		out := h.OnAccept(ctx, s)
		if s.err != nil {
			return nil, s.err
		}
		return out, nil
	}
	return nil, nil
}

func validate(steps []*Step) error {
	var errs []error
	seen := make(map[string]struct{}, len(steps))

	for _, st := range steps {
		if st.name == "" {
			errs = append(errs, &BuildError{Reason: "empty step name"})
			continue
		}
		if _, dup := seen[st.name]; dup {
			errs = append(errs, &BuildError{Step: st.name, Reason: "duplicate step name"})
		}
		seen[st.name] = struct{}{}

		if st.producer == nil {
			errs = append(errs, &BuildError{Step: st.name, Reason: "slot was never bound to a producer"})
		}
	}
	return errors.Join(errs...)
}
