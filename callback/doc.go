// Package callback maps backend functions to opaque identifiers so that a
// serialized element tree can reference backend logic without exposing it.
//
// A function is wrapped once with Func and embedded in an element tree. When
// the tree is serialized, the Registry hands out a stable identifier for the
// wrapper; the frontend later posts that identifier back together with the
// event arguments and the Registry invokes the function:
//
//	var onSubmit = callback.MustFunc(func(ctx context.Context, form UserForm) (*element.Element, error) {
//	    ...
//	})
//
//	reg := callback.NewRegistry()
//	id := reg.ID(onSubmit)                      // same id on every call
//	res, found, err := reg.Invoke(ctx, id, args) // found is false for unknown ids
//
// Entries are never evicted. Wrapping a fresh closure on every request
// therefore grows the registry for the lifetime of the process; declare
// callbacks once, at package or application level, and reuse them.
package callback
